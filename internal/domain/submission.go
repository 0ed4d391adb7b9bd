package domain

import "time"

// слово, собранное участником за раунд
type SubmittedWord struct {
	Word        string     `json:"word" bson:"word"`
	Length      int        `json:"length" bson:"length"`
	Reward      *int       `json:"reward,omitempty" bson:"reward,omitempty"`
	IsValid     *bool      `json:"isValid,omitempty" bson:"isValid,omitempty"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty" bson:"validatedAt,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

func (w SubmittedWord) Valid() bool {
	return w.IsValid != nil && *w.IsValid
}

// WordSubmission - итог одного раунда (одной анаграммы), только добавление
type WordSubmission struct {
	SessionID      string          `json:"sessionId" bson:"sessionId"`
	ProlificID     string          `json:"prolificId" bson:"prolificId"`
	Phase          string          `json:"phase" bson:"phase"`
	AnagramShown   string          `json:"anagramShown" bson:"anagramShown"`
	SubmittedWords []SubmittedWord `json:"submittedWords" bson:"submittedWords"`
	TotalReward    int             `json:"totalReward" bson:"totalReward"`
	TimeSpent      int64           `json:"timeSpent" bson:"timeSpent"`
	SubmittedAt    *time.Time      `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	ValidatedAt    *time.Time      `json:"validatedAt,omitempty" bson:"validatedAt,omitempty"`
}

// результаты для страницы дебрифинга
type GameResults struct {
	ValidWords     []SubmittedWord `json:"validWords"`
	InvalidWords   []SubmittedWord `json:"invalidWords"`
	TotalReward    int             `json:"totalReward"`
	AnagramDetails []AnagramResult `json:"anagramDetails"`
}

type AnagramResult struct {
	Anagram string          `json:"anagram"`
	Words   []SubmittedWord `json:"words"`
}
