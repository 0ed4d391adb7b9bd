package domain

// решения анаграммы по длине слова: "4" -> ["TEAM", "MEAT"]
type Solutions map[string][]string

type Anagram struct {
	Word      string    `json:"word" bson:"word"`
	Solutions Solutions `json:"solutions" bson:"solutions"`
}

// лимиты времени в секундах
type TimeSettings struct {
	GameTime     int `json:"game_time" bson:"game_time"`
	TutorialTime int `json:"tutorial_time" bson:"tutorial_time"`
	SurveyTime   int `json:"survey_time" bson:"survey_time"`
}

// GameConfig - единственный документ коллекции game_config, заливается через cmd/seed
type GameConfig struct {
	GameAnagrams    []Anagram      `json:"game_anagrams" bson:"game_anagrams"`
	TutorialAnagram *Anagram       `json:"tutorial_anagrams,omitempty" bson:"tutorial_anagrams,omitempty"`
	TimeSettings    TimeSettings   `json:"time_settings" bson:"time_settings"`
	Rewards         map[string]int `json:"rewards" bson:"rewards"`
	Compensation    map[string]any `json:"compensation,omitempty" bson:"compensation,omitempty"`
}

// сводка для лендинга
type StudyConfig struct {
	TimeSettings TimeSettings   `json:"timeSettings"`
	Rewards      map[string]int `json:"rewards"`
	Compensation map[string]any `json:"compensation"`
	GameAnagrams int            `json:"game_anagrams"`
}
