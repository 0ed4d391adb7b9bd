// Package mongostore keeps the study collections in MongoDB, one collection per
// document kind, with the same method set as the Postgres repositories.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

const (
	CollSessions    = "sessions"
	CollGameConfig  = "game_config"
	CollMessages    = "anti_cheating_messages"
	CollEvents      = "game_events"
	CollSubmissions = "word_submissions"
)

// EnsureIndexes создает индексы, на которых держатся инварианты (одна сессия на участника)
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollSessions:    {{Keys: bson.D{{Key: "prolificId", Value: 1}}, Options: options.Index().SetUnique(true)}},
		CollMessages:    {{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		CollEvents:      {{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "timestamp", Value: 1}}}},
		CollSubmissions: {{Keys: bson.D{{Key: "sessionId", Value: 1}}}},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// вложенные документы приходят как bson.M, bson.D или bson.A в зависимости от
// настроек клиента; приводим к map[string]any и []any, как у остальных хранилищ
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	}
	return v
}

func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalizeSlice(items []any) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = normalize(v)
	}
	return out
}
