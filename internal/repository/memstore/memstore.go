// Package memstore is an in-process store for local runs (STORAGE_DRIVER=memory)
// and for service/handler tests. Nothing survives a restart.
package memstore

import (
	"context"
	"sync"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
)

// Store - набор коллекций в памяти
type Store struct {
	Sessions    *Sessions
	Config      *Config
	Messages    *Messages
	Events      *Events
	Submissions *Submissions
}

func New() *Store {
	return &Store{
		Sessions: &Sessions{
			byID:       make(map[string]*domain.Session),
			byProlific: make(map[string]string),
		},
		Config:      &Config{},
		Messages:    &Messages{},
		Events:      &Events{},
		Submissions: &Submissions{},
	}
}

type Sessions struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Session
	byProlific map[string]string
}

func (s *Sessions) GetByID(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySession(sess), nil
}

func (s *Sessions) GetByProlificID(_ context.Context, prolificID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byProlific[prolificID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySession(s.byID[id]), nil
}

func (s *Sessions) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byProlific[sess.ProlificID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.byID[sess.ID]; ok {
		return repository.ErrDuplicate
	}
	s.byID[sess.ID] = copySession(sess)
	s.byProlific[sess.ProlificID] = sess.ID
	return nil
}

func (s *Sessions) SetPhaseStatus(_ context.Context, id, phase string, entry map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	status, ok := sess.GameState["completionStatus"].(map[string]any)
	if !ok {
		status = map[string]any{}
		sess.GameState["completionStatus"] = status
	}
	status[phase] = entry
	return nil
}

func (s *Sessions) MergeGameState(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		sess.GameState[k] = v
	}
	return nil
}

// копия верхнего уровня gameState и completionStatus, чтобы вызывающий не правил хранилище
func copySession(in *domain.Session) *domain.Session {
	out := *in
	out.GameState = make(map[string]any, len(in.GameState))
	for k, v := range in.GameState {
		if status, ok := v.(map[string]any); ok && k == "completionStatus" {
			cp := make(map[string]any, len(status))
			for phase, entry := range status {
				cp[phase] = entry
			}
			v = cp
		}
		out.GameState[k] = v
	}
	return &out
}

type Config struct {
	mu  sync.RWMutex
	cfg *domain.GameConfig
}

func (c *Config) Get(_ context.Context) (*domain.GameConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cfg == nil {
		return nil, repository.ErrNotFound
	}
	cp := *c.cfg
	return &cp, nil
}

func (c *Config) Replace(_ context.Context, cfg *domain.GameConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *cfg
	c.cfg = &cp
	return nil
}

type Messages struct {
	mu   sync.RWMutex
	list []domain.AntiCheatingMessage
}

func (m *Messages) List(_ context.Context) ([]domain.AntiCheatingMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.AntiCheatingMessage(nil), m.list...), nil
}

func (m *Messages) IncrementShown(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].ID == id {
			m.list[i].ShownCount++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *Messages) Upsert(_ context.Context, msg domain.AntiCheatingMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].ID == msg.ID {
			m.list[i].Text = msg.Text
			return nil
		}
	}
	m.list = append(m.list, msg)
	return nil
}

type Events struct {
	mu   sync.RWMutex
	docs []domain.Document
}

func (e *Events) Insert(_ context.Context, doc domain.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = append(e.docs, doc)
	return nil
}

// All возвращает записанные события в порядке вставки
func (e *Events) All() []domain.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Document(nil), e.docs...)
}

type Submissions struct {
	mu   sync.RWMutex
	list []domain.WordSubmission
}

func (s *Submissions) Insert(_ context.Context, sub *domain.WordSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, *sub)
	return nil
}

func (s *Submissions) ListBySession(_ context.Context, sessionID string) ([]domain.WordSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.WordSubmission
	for _, sub := range s.list {
		if sub.SessionID == sessionID {
			out = append(out, sub)
		}
	}
	return out, nil
}
