package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/game"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/metrics"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

// GameService - оркестрация сессий и игры поверх хранилищ
type GameService struct {
	stores Stores
	now    func() time.Time
	intn   func(int) int
	newID  func() string
}

func NewGameService(stores Stores) *GameService {
	return &GameService{
		stores: stores,
		now:    time.Now,
		intn:   game.SecureIntn,
		newID:  uuid.NewString,
	}
}

// ответ /game/init; currentMessage дублирует theory, фронт читает его
type GameInit struct {
	Theory         domain.MessageView  `json:"theory"`
	CurrentMessage domain.MessageView  `json:"currentMessage"`
	Word           string              `json:"word"`
	Solutions      domain.Solutions    `json:"solutions"`
	TotalAnagrams  int                 `json:"totalAnagrams"`
	TimeSettings   domain.TimeSettings `json:"timeSettings"`
}

type TutorialInit struct {
	Word      string           `json:"word"`
	Solutions domain.Solutions `json:"solutions"`
	TimeLimit int              `json:"timeLimit"`
}

type NextAnagram struct {
	Word          string           `json:"word"`
	Solutions     domain.Solutions `json:"solutions"`
	Index         int              `json:"index"`
	TotalAnagrams int              `json:"totalAnagrams"`
}

// ParseSessionID проверяет формат id сессии и приводит его к каноничному виду
func ParseSessionID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", invalidFormat("Invalid session ID format")
	}
	return id.String(), nil
}

func (s *GameService) gameConfig(ctx context.Context) (*domain.GameConfig, error) {
	cfg, err := s.stores.Config.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Game configuration not found")
	}
	return cfg, err
}

// сводка конфига для лендинга
func (s *GameService) StudyConfig(ctx context.Context) (*domain.StudyConfig, error) {
	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.StudyConfig{
		TimeSettings: cfg.TimeSettings,
		Rewards:      cfg.Rewards,
		Compensation: cfg.Compensation,
		GameAnagrams: len(cfg.GameAnagrams),
	}, nil
}

// InitializeGame отдает первую анаграмму основной игры и сообщение против списывания.
// Сессия только проверяется, состояние в ней не меняется
func (s *GameService) InitializeGame(ctx context.Context, sessionID string) (*GameInit, error) {
	if _, err := s.existingSession(ctx, sessionID); err != nil {
		return nil, err
	}

	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return nil, err
	}
	if len(cfg.GameAnagrams) == 0 {
		return nil, notFound("No game anagrams configured")
	}

	msg, err := s.SelectMessage(ctx)
	if err != nil {
		return nil, err
	}

	first := cfg.GameAnagrams[0]
	return &GameInit{
		Theory:         msg.View(),
		CurrentMessage: msg.View(),
		Word:           first.Word,
		Solutions:      first.Solutions,
		TotalAnagrams:  len(cfg.GameAnagrams),
		TimeSettings:   cfg.TimeSettings,
	}, nil
}

// InitializeTutorial: формат id проверяется до любых обращений к хранилищу
func (s *GameService) InitializeTutorial(ctx context.Context, sessionID string) (*TutorialInit, error) {
	if _, err := s.existingSession(ctx, sessionID); err != nil {
		return nil, err
	}

	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.TutorialAnagram == nil || cfg.TutorialAnagram.Word == "" {
		return nil, notFound("Tutorial configuration not found")
	}

	return &TutorialInit{
		Word:      cfg.TutorialAnagram.Word,
		Solutions: cfg.TutorialAnagram.Solutions,
		TimeLimit: cfg.TimeSettings.TutorialTime,
	}, nil
}

// следующая анаграмма после currentIndex
func (s *GameService) NextAnagram(ctx context.Context, sessionID string, currentIndex int) (*NextAnagram, error) {
	if _, err := s.existingSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if currentIndex < 0 {
		return nil, invalidFormat("Invalid anagram index")
	}

	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return nil, err
	}

	next := currentIndex + 1
	if next >= len(cfg.GameAnagrams) {
		return nil, notFound("No more anagrams")
	}
	a := cfg.GameAnagrams[next]
	return &NextAnagram{
		Word:          a.Word,
		Solutions:     a.Solutions,
		Index:         next,
		TotalAnagrams: len(cfg.GameAnagrams),
	}, nil
}

func (s *GameService) ValidateWordSubmission(ctx context.Context, word, anagram string) (game.WordResult, error) {
	cfg, err := s.gameConfig(ctx)
	if err != nil {
		return game.WordResult{}, err
	}

	res, err := game.ValidateWord(cfg, word, anagram)
	if errors.Is(err, game.ErrAnagramNotFound) {
		return game.WordResult{}, notFound(err.Error())
	}
	if err != nil {
		return game.WordResult{}, err
	}

	metrics.WordValidations.WithLabelValues(strconv.FormatBool(res.IsValid)).Inc()
	return res, nil
}

// SelectMessage берет наименее показанное сообщение и увеличивает его счетчик на 1.
// Между чтением и инкрементом есть гонка, два запроса могут выбрать одно сообщение
func (s *GameService) SelectMessage(ctx context.Context) (domain.AntiCheatingMessage, error) {
	messages, err := s.stores.Messages.List(ctx)
	if err != nil {
		return domain.AntiCheatingMessage{}, err
	}

	msg, err := game.PickLeastShown(messages, s.intn)
	if errors.Is(err, game.ErrNoMessages) {
		return domain.AntiCheatingMessage{}, notFound(err.Error())
	}
	if err != nil {
		return domain.AntiCheatingMessage{}, err
	}

	if err := s.stores.Messages.IncrementShown(ctx, msg.ID); err != nil {
		return domain.AntiCheatingMessage{}, err
	}
	msg.ShownCount++

	metrics.MessagesShown.WithLabelValues(strconv.Itoa(msg.ID)).Inc()
	return msg, nil
}
