package service

import (
	"context"
	"errors"
	"time"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/game"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/logger"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/metrics"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

// отметка о прохождении туториала
type TutorialCompletion struct {
	SessionID      string           `json:"sessionId"`
	ProlificID     string           `json:"prolificId"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`
	ValidatedWords []map[string]any `json:"validatedWords"`
}

// проверяет формат id и наличие сессии
func (s *GameService) existingSession(ctx context.Context, rawID string) (*domain.Session, error) {
	id, err := ParseSessionID(rawID)
	if err != nil {
		return nil, err
	}
	sess, err := s.stores.Sessions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Session not found")
	}
	return sess, err
}

// InitializeSession идемпотентна по prolificId: повторный вызов отдает id существующей сессии
func (s *GameService) InitializeSession(ctx context.Context, prolificID string, metadata domain.Metadata) (string, error) {
	if prolificID == "" {
		return "", invalidFormat("Missing required field: prolificId")
	}

	existing, err := s.stores.Sessions.GetByProlificID(ctx, prolificID)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	sess := domain.NewSession(s.newID(), prolificID, metadata, s.now().UTC())
	if err := s.stores.Sessions.Create(ctx, sess); err != nil {
		// параллельный запрос того же участника успел создать сессию
		if errors.Is(err, repository.ErrDuplicate) {
			existing, getErr := s.stores.Sessions.GetByProlificID(ctx, prolificID)
			if getErr != nil {
				return "", getErr
			}
			return existing.ID, nil
		}
		return "", err
	}

	metrics.SessionsCreated.Inc()
	logger.Info("session created", "session_id", sess.ID, "prolific_id", prolificID)
	return sess.ID, nil
}

// CompleteSession дописывает переданные ключи в gameState сессии
func (s *GameService) CompleteSession(ctx context.Context, sessionID string, gameState map[string]any) error {
	id, err := ParseSessionID(sessionID)
	if err != nil {
		return err
	}
	if len(gameState) == 0 {
		return invalidFormat("Missing required field: gameState")
	}

	err = s.stores.Sessions.MergeGameState(ctx, id, gameState)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Session not found")
	}
	return err
}

func (s *GameService) CompleteTutorial(ctx context.Context, req TutorialCompletion) error {
	id, err := ParseSessionID(req.SessionID)
	if err != nil {
		return err
	}

	at := s.now().UTC()
	if req.CompletedAt != nil {
		at = *req.CompletedAt
	}
	words := req.ValidatedWords
	if words == nil {
		words = []map[string]any{}
	}

	err = s.stores.Sessions.SetPhaseStatus(ctx, id, domain.PhaseTutorial, domain.CompletedPhase(at, "validatedWords", words))
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Session not found")
	}
	return err
}

// ProcessMeaningSubmissions перезаписывает запись meaningCheck целиком (без слияния с прежней).
// isCorrect считается только для слов, где клиент его не прислал
func (s *GameService) ProcessMeaningSubmissions(ctx context.Context, sub domain.WordMeaningSubmission) error {
	id, err := ParseSessionID(sub.SessionID)
	if err != nil {
		return err
	}

	at := sub.CompletedAt
	if at.IsZero() {
		at = s.now().UTC()
	}
	meanings := game.CheckWordMeanings(sub.WordMeanings)

	err = s.stores.Sessions.SetPhaseStatus(ctx, id, domain.PhaseMeaningCheck, domain.CompletedPhase(at, "wordMeanings", meanings))
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Session not found")
	}
	return err
}
