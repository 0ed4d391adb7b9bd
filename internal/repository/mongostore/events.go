package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(CollEvents)}
}

func (r *EventRepository) Insert(ctx context.Context, doc domain.Document) error {
	_, err := r.coll.InsertOne(ctx, bson.M(doc))
	return err
}

type SubmissionRepository struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection(CollSubmissions)}
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.WordSubmission) error {
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

func (r *SubmissionRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.WordSubmission, error) {
	cur, err := r.coll.Find(ctx, bson.M{"sessionId": sessionID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []domain.WordSubmission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
