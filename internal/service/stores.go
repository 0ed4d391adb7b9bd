package service

import (
	"context"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

// хранилища, которые нужны сервису; реализации в repository, mongostore и memstore

type SessionStore interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByProlificID(ctx context.Context, prolificID string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	SetPhaseStatus(ctx context.Context, id, phase string, entry map[string]any) error
	MergeGameState(ctx context.Context, id string, fields map[string]any) error
}

type ConfigStore interface {
	Get(ctx context.Context) (*domain.GameConfig, error)
}

type MessageStore interface {
	List(ctx context.Context) ([]domain.AntiCheatingMessage, error)
	IncrementShown(ctx context.Context, id int) error
}

type EventStore interface {
	Insert(ctx context.Context, doc domain.Document) error
}

type SubmissionStore interface {
	Insert(ctx context.Context, s *domain.WordSubmission) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.WordSubmission, error)
}

type Stores struct {
	Sessions    SessionStore
	Config      ConfigStore
	Messages    MessageStore
	Events      EventStore
	Submissions SubmissionStore
}
