package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// журнал game_events, только вставка
type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Insert(ctx context.Context, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	sessionID, _ := doc["sessionId"].(string)
	prolificID, _ := doc["prolificId"].(string)
	phase, _ := doc["phase"].(string)
	eventType, _ := doc["eventType"].(string)

	_, err = r.db.Exec(ctx, `
		INSERT INTO game_events (session_id, prolific_id, phase, event_type, doc)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, prolificID, phase, eventType, raw)
	return err
}
