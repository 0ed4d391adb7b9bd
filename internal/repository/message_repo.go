package repository

import (
	"context"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// коллекция anti_cheating_messages
type MessageRepository struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) List(ctx context.Context) ([]domain.AntiCheatingMessage, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text, shown_count FROM anti_cheating_messages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.AntiCheatingMessage
	for rows.Next() {
		var m domain.AntiCheatingMessage
		if err := rows.Scan(&m.ID, &m.Text, &m.ShownCount); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// shown_count + 1 одним UPDATE
func (r *MessageRepository) IncrementShown(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `UPDATE anti_cheating_messages SET shown_count = shown_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// сидер: текст обновляется, счетчик показов сохраняется
func (r *MessageRepository) Upsert(ctx context.Context, m domain.AntiCheatingMessage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO anti_cheating_messages (id, text, shown_count) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text
	`, m.ID, m.Text, m.ShownCount)
	return err
}
