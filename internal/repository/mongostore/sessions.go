package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(CollSessions)}
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SessionRepository) GetByProlificID(ctx context.Context, prolificID string) (*domain.Session, error) {
	return r.findOne(ctx, bson.M{"prolificId": prolificID})
}

func (r *SessionRepository) findOne(ctx context.Context, filter bson.M) (*domain.Session, error) {
	var s domain.Session
	if err := r.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		return nil, translate(err)
	}
	s.GameState = normalizeMap(s.GameState)
	return &s, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.coll.InsertOne(ctx, s)
	return translate(err)
}

func (r *SessionRepository) SetPhaseStatus(ctx context.Context, id, phase string, entry map[string]any) error {
	return r.update(ctx, id, bson.M{"gameState.completionStatus." + phase: entry})
}

func (r *SessionRepository) MergeGameState(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set["gameState."+k] = v
	}
	return r.update(ctx, id, set)
}

func (r *SessionRepository) update(ctx context.Context, id string, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
