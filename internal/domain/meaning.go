package domain

import "time"

type WordMeaning struct {
	Word            string     `json:"word" bson:"word"`
	ProvidedMeaning string     `json:"providedMeaning" bson:"providedMeaning"`
	IsCorrect       *bool      `json:"isCorrect,omitempty" bson:"isCorrect,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

// отправка фазы проверки значений слов
type WordMeaningSubmission struct {
	SessionID      string        `json:"sessionId"`
	ProlificID     string        `json:"prolificId"`
	WordMeanings   []WordMeaning `json:"wordMeanings"`
	CompletedAt    time.Time     `json:"completedAt"`
	TotalTimeSpent *int64        `json:"totalTimeSpent,omitempty"`
}
