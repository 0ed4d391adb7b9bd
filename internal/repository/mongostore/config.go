package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

type ConfigRepository struct {
	coll *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{coll: db.Collection(CollGameConfig)}
}

func (r *ConfigRepository) Get(ctx context.Context) (*domain.GameConfig, error) {
	var cfg domain.GameConfig
	if err := r.coll.FindOne(ctx, bson.M{}).Decode(&cfg); err != nil {
		return nil, translate(err)
	}
	cfg.Compensation = normalizeMap(cfg.Compensation)
	return &cfg, nil
}

func (r *ConfigRepository) Replace(ctx context.Context, cfg *domain.GameConfig) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{}, cfg, options.Replace().SetUpsert(true))
	return err
}
