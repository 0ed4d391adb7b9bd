package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(CollMessages)}
}

func (r *MessageRepository) List(ctx context.Context) ([]domain.AntiCheatingMessage, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var messages []domain.AntiCheatingMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) IncrementShown(ctx context.Context, id int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"shown_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) Upsert(ctx context.Context, m domain.AntiCheatingMessage) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": m.ID},
		bson.M{
			"$set":         bson.M{"text": m.Text},
			"$setOnInsert": bson.M{"shown_count": m.ShownCount},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
