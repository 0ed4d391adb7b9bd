package domain

import "time"

// Типы событий, которые шлет фронт (список не закрытый)
const (
	EventGameInit             = "game_init"
	EventGameComplete         = "game_complete"
	EventWordSubmission       = "word_submission"
	EventMeaningCheckComplete = "meaning_check_complete"
)

// GameEvent - запись телеметрии, только добавление
type GameEvent struct {
	SessionID       string         `json:"sessionId"`
	ProlificID      string         `json:"prolificId"`
	Phase           string         `json:"phase"`
	CurrentTheoryID *int           `json:"currentTheoryId,omitempty"`
	AnagramShown    *string        `json:"anagramShown,omitempty"`
	EventType       string         `json:"eventType"`
	Details         map[string]any `json:"details,omitempty"`
	Timestamp       *time.Time     `json:"timestamp,omitempty"`
}

// Document собирает документ для записи: без отсутствующих значений,
// timestamp заполняется now если клиент его не прислал
func (e GameEvent) Document(now time.Time) Document {
	doc := Document{
		"sessionId":  e.SessionID,
		"prolificId": e.ProlificID,
		"phase":      e.Phase,
		"eventType":  e.EventType,
	}
	if e.CurrentTheoryID != nil {
		doc["currentTheoryId"] = *e.CurrentTheoryID
	}
	if e.AnagramShown != nil {
		doc["anagramShown"] = *e.AnagramShown
	}
	if e.Details != nil {
		doc["details"] = StripAbsent(e.Details)
	}
	if e.Timestamp != nil {
		doc["timestamp"] = e.Timestamp.UTC()
	} else {
		doc["timestamp"] = now.UTC()
	}
	return doc
}
