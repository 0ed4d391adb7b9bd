package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// singleton документ game_config
type ConfigRepository struct {
	db DB
}

func NewConfigRepository(db DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) Get(ctx context.Context) (*domain.GameConfig, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, `SELECT doc FROM game_config ORDER BY id LIMIT 1`).Scan(&raw); err != nil {
		return nil, translate(err)
	}

	var cfg domain.GameConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode game config: %w", err)
	}
	return &cfg, nil
}

// заменяет конфиг (используется сидером)
func (r *ConfigRepository) Replace(ctx context.Context, cfg *domain.GameConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal game config: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO game_config (id, doc, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, raw)
	return translate(err)
}
