package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// коллекция word_submissions
type SubmissionRepository struct {
	db DB
}

func NewSubmissionRepository(db DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.WordSubmission) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO word_submissions (session_id, prolific_id, phase, anagram_shown, doc)
		VALUES ($1, $2, $3, $4, $5)
	`, s.SessionID, s.ProlificID, s.Phase, s.AnagramShown, raw)
	return err
}

// отправки сессии в порядке вставки
func (r *SubmissionRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.WordSubmission, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM word_submissions WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WordSubmission
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var s domain.WordSubmission
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
