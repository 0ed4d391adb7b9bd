package service

import (
	"context"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/game"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/metrics"
)

// LogEvent пишет событие телеметрии: без пустых полей, с timestamp
func (s *GameService) LogEvent(ctx context.Context, ev domain.GameEvent) error {
	if ev.SessionID == "" || ev.ProlificID == "" {
		return invalidFormat("Missing required fields: sessionId or prolificId")
	}
	if ev.Phase == "" || ev.EventType == "" {
		return invalidFormat("Missing required fields: phase or eventType")
	}

	if err := s.stores.Events.Insert(ctx, ev.Document(s.now())); err != nil {
		return err
	}
	metrics.EventsLogged.WithLabelValues(ev.Phase).Inc()
	return nil
}

// SubmitWords сохраняет итог раунда. Валидность и награда пересчитываются по конфигу,
// если анаграмма в нем есть; иначе остаются значения клиента
func (s *GameService) SubmitWords(ctx context.Context, sub *domain.WordSubmission) error {
	id, err := ParseSessionID(sub.SessionID)
	if err != nil {
		return err
	}
	if sub.ProlificID == "" || sub.AnagramShown == "" {
		return invalidFormat("Missing required fields: prolificId or anagramShown")
	}
	sub.SessionID = id

	now := s.now().UTC()
	if sub.SubmittedAt == nil {
		sub.SubmittedAt = &now
	}

	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return err
	}
	if _, err := game.FindSolutions(cfg, sub.AnagramShown); err == nil {
		total := 0
		for i := range sub.SubmittedWords {
			w := &sub.SubmittedWords[i]
			res, _ := game.ValidateWord(cfg, w.Word, sub.AnagramShown)
			valid, reward := res.IsValid, res.Reward
			w.IsValid = &valid
			w.Reward = &reward
			total += reward
		}
		sub.TotalReward = total
	}

	return s.stores.Submissions.Insert(ctx, sub)
}

// GameResults собирает слова основной игры для дебрифинга
func (s *GameService) GameResults(ctx context.Context, sessionID string) (*domain.GameResults, error) {
	sess, err := s.existingSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subs, err := s.stores.Submissions.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	res := &domain.GameResults{
		ValidWords:     []domain.SubmittedWord{},
		InvalidWords:   []domain.SubmittedWord{},
		AnagramDetails: []domain.AnagramResult{},
	}
	for _, sub := range subs {
		if sub.Phase == domain.EventPhaseTutorial {
			continue
		}
		for _, w := range sub.SubmittedWords {
			if w.Valid() {
				res.ValidWords = append(res.ValidWords, w)
				if w.Reward != nil {
					res.TotalReward += *w.Reward
				}
			} else {
				res.InvalidWords = append(res.InvalidWords, w)
			}
		}
		res.AnagramDetails = append(res.AnagramDetails, domain.AnagramResult{
			Anagram: sub.AnagramShown,
			Words:   sub.SubmittedWords,
		})
	}
	return res, nil
}
