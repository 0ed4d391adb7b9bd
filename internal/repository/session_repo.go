package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// операции с коллекцией sessions
type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id::text, prolific_id, metadata, game_state, created_at`

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1::uuid`, id)
	return scanSession(row)
}

func (r *SessionRepository) GetByProlificID(ctx context.Context, prolificID string) (*domain.Session, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE prolific_id = $1`, prolificID)
	return scanSession(row)
}

// создает сессию; ErrDuplicate если prolific_id уже занят
func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	metadataJSON, err := json.Marshal(s.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	stateJSON, err := json.Marshal(s.GameState)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO sessions (id, prolific_id, metadata, game_state, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5)
	`, s.ID, s.ProlificID, metadataJSON, stateJSON, s.CreatedAt)
	return translate(err)
}

// перезаписывает gameState.completionStatus.<phase> целиком
func (r *SessionRepository) SetPhaseStatus(ctx context.Context, id, phase string, entry map[string]any) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal phase status: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET game_state = jsonb_set(
			jsonb_set(game_state, '{completionStatus}', COALESCE(game_state->'completionStatus', '{}'::jsonb)),
			ARRAY['completionStatus', $2::text], $3::jsonb, true)
		WHERE id = $1::uuid
	`, id, phase, entryJSON)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// дописывает ключи верхнего уровня в gameState (семантика $set)
func (r *SessionRepository) MergeGameState(ctx context.Context, id string, fields map[string]any) error {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE sessions SET game_state = game_state || $2::jsonb WHERE id = $1::uuid`, id, fieldsJSON)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var metadataJSON, stateJSON []byte
	if err := row.Scan(&s.ID, &s.ProlificID, &metadataJSON, &stateJSON, &s.CreatedAt); err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(metadataJSON, &s.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if err := json.Unmarshal(stateJSON, &s.GameState); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return &s, nil
}
