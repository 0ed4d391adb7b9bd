package domain

import "time"

// фазы исследования, ключи в gameState.completionStatus
const (
	PhaseTutorial     = "tutorial"
	PhaseMainGame     = "mainGame"
	PhaseMeaningCheck = "meaningCheck"
)

// значения поля phase в событиях и отправках слов (так шлет фронт)
const (
	EventPhaseTutorial     = "tutorial"
	EventPhaseMainGame     = "main_game"
	EventPhaseMeaningCheck = "meaning_check"
)

// клиентские метаданные участника
type Metadata struct {
	Browser    string         `json:"browser" bson:"browser"`
	Platform   *string        `json:"platform,omitempty" bson:"platform,omitempty"`
	ScreenSize map[string]int `json:"screenSize" bson:"screenSize"`
}

// Session - один участник исследования. gameState хранится как документ,
// потому что /sessions/complete дописывает в него произвольные ключи
type Session struct {
	ID         string         `json:"id" bson:"_id"`
	ProlificID string         `json:"prolificId" bson:"prolificId"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	Metadata   Metadata       `json:"metadata" bson:"metadata"`
	GameState  map[string]any `json:"gameState" bson:"gameState"`
}

// создает сессию с дефолтным статусом прохождения всех трех фаз
func NewSession(id, prolificID string, metadata Metadata, now time.Time) *Session {
	return &Session{
		ID:         id,
		ProlificID: prolificID,
		CreatedAt:  now,
		Metadata:   metadata,
		GameState: map[string]any{
			"completionStatus": map[string]any{
				PhaseTutorial:     map[string]any{"completed": false},
				PhaseMainGame:     map[string]any{"completed": false},
				PhaseMeaningCheck: map[string]any{"completed": false},
			},
			"startTime": now,
		},
	}
}

// PhaseStatus возвращает запись completionStatus для фазы или nil
func (s *Session) PhaseStatus(phase string) map[string]any {
	status, ok := s.GameState["completionStatus"].(map[string]any)
	if !ok {
		return nil
	}
	entry, _ := status[phase].(map[string]any)
	return entry
}

// запись о завершении фазы: completed=true, время и payload фазы
func CompletedPhase(at time.Time, payloadKey string, payload any) map[string]any {
	entry := map[string]any{
		"completed":   true,
		"completedAt": at,
	}
	if payloadKey != "" {
		entry[payloadKey] = payload
	}
	return entry
}
