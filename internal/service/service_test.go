package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository"
	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/repository/memstore"
)

const testSessionID = "6f1c2a54-8a0e-4b8e-9d55-0c3a1f6b7e21"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *domain.GameConfig {
	return &domain.GameConfig{
		GameAnagrams: []domain.Anagram{
			{Word: "TEAMS", Solutions: domain.Solutions{"4": {"TEAM", "MEAT"}, "5": {"STEAM"}}},
			{Word: "LISTEN", Solutions: domain.Solutions{"6": {"SILENT", "TINSEL"}}},
		},
		TutorialAnagram: &domain.Anagram{Word: "CARE", Solutions: domain.Solutions{"4": {"RACE", "ACRE"}}},
		TimeSettings:    domain.TimeSettings{GameTime: 600, TutorialTime: 120, SurveyTime: 300},
		Rewards:         map[string]int{"4": 10, "5": 20, "6": 30},
	}
}

// сервис поверх memstore с детерминированными временем, id и выбором сообщения
func newTestService(t *testing.T) (*GameService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Config.Replace(context.Background(), testConfig()))

	svc := NewGameService(Stores{
		Sessions:    store.Sessions,
		Config:      store.Config,
		Messages:    store.Messages,
		Events:      store.Events,
		Submissions: store.Submissions,
	})
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return testSessionID }
	svc.intn = func(int) int { return 0 }
	return svc, store
}

func createSession(t *testing.T, svc *GameService) string {
	t.Helper()
	id, err := svc.InitializeSession(context.Background(), "prolific-1", domain.Metadata{Browser: "firefox"})
	require.NoError(t, err)
	return id
}

// хранилище, которое роняет тест при любом обращении
type untouchableSessions struct{ t *testing.T }

func (u untouchableSessions) fail() error {
	u.t.Fatal("store must not be called")
	return nil
}
func (u untouchableSessions) GetByID(context.Context, string) (*domain.Session, error) {
	return nil, u.fail()
}
func (u untouchableSessions) GetByProlificID(context.Context, string) (*domain.Session, error) {
	return nil, u.fail()
}
func (u untouchableSessions) Create(context.Context, *domain.Session) error { return u.fail() }
func (u untouchableSessions) SetPhaseStatus(context.Context, string, string, map[string]any) error {
	return u.fail()
}
func (u untouchableSessions) MergeGameState(context.Context, string, map[string]any) error {
	return u.fail()
}

func TestInitializeSession_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first := createSession(t, svc)
	svc.newID = func() string { return "0b7e8d8e-0000-4000-8000-000000000001" }
	second, err := svc.InitializeSession(ctx, "prolific-1", domain.Metadata{Browser: "chrome"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	sess, err := store.Sessions.GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "firefox", sess.Metadata.Browser)
	assert.Equal(t, false, sess.PhaseStatus(domain.PhaseTutorial)["completed"])
	assert.Equal(t, fixedNow, sess.CreatedAt)
}

// первый поиск промахивается, хотя сессия уже создана параллельным запросом
type racySessions struct {
	*memstore.Sessions
	missed bool
}

func (r *racySessions) GetByProlificID(ctx context.Context, prolificID string) (*domain.Session, error) {
	if !r.missed {
		r.missed = true
		return nil, repository.ErrNotFound
	}
	return r.Sessions.GetByProlificID(ctx, prolificID)
}

func TestInitializeSession_DuplicateInsertReturnsExisting(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	winner := domain.NewSession("0b7e8d8e-0000-4000-8000-0000000000aa", "prolific-1", domain.Metadata{Browser: "safari"}, fixedNow)
	require.NoError(t, store.Sessions.Create(ctx, winner))

	svc := NewGameService(Stores{Sessions: &racySessions{Sessions: store.Sessions}})
	svc.newID = func() string { return testSessionID }

	id, err := svc.InitializeSession(ctx, "prolific-1", domain.Metadata{Browser: "firefox"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, id)

	_, err = store.Sessions.GetByID(ctx, testSessionID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInitializeSession_MissingProlificID(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.InitializeSession(context.Background(), "", domain.Metadata{})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidateWordSubmission(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		word    string
		anagram string
		valid   bool
		reward  int
	}{
		{"valid lower case", "steam", "TEAMS", true, 20},
		{"valid four letters", "Meat", "TEAMS", true, 10},
		{"wrong bucket", "SEAT", "TEAMS", false, 0},
		{"tutorial anagram", "race", "CARE", true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ValidateWordSubmission(ctx, tt.word, tt.anagram)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.IsValid)
			assert.Equal(t, tt.reward, res.Reward)
		})
	}

	_, err := svc.ValidateWordSubmission(ctx, "word", "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Anagram not found")
}

func TestValidateWordSubmission_NoConfig(t *testing.T) {
	svc := NewGameService(Stores{Config: memstore.New().Config})
	_, err := svc.ValidateWordSubmission(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Game configuration not found")
}

func TestSelectMessage_LeastShown(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	for _, m := range []domain.AntiCheatingMessage{
		{ID: 1, Text: "a", ShownCount: 3},
		{ID: 2, Text: "b", ShownCount: 1},
		{ID: 3, Text: "c", ShownCount: 2},
	} {
		require.NoError(t, store.Messages.Upsert(ctx, m))
	}

	msg, err := svc.SelectMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, msg.ID)
	assert.Equal(t, 2, msg.ShownCount)

	// теперь у 2 и 3 по два показа, intn=0 берет первое
	msg, err = svc.SelectMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, msg.ID)

	list, err := store.Messages.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, list[1].ShownCount)
}

func TestSelectMessage_Empty(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SelectMessage(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "No messages found")
}

func TestInitializeGame(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.Messages.Upsert(ctx, domain.AntiCheatingMessage{ID: 7, Text: "Be honest"}))
	id := createSession(t, svc)

	gi, err := svc.InitializeGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "TEAMS", gi.Word)
	assert.Equal(t, 2, gi.TotalAnagrams)
	assert.Equal(t, domain.MessageView{ID: 7, Text: "Be honest"}, gi.Theory)
	assert.Equal(t, gi.Theory, gi.CurrentMessage)
	assert.Equal(t, 600, gi.TimeSettings.GameTime)

	_, err = svc.InitializeGame(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = svc.InitializeGame(ctx, "0b7e8d8e-0000-4000-8000-000000000009")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitializeTutorial(t *testing.T) {
	svc, _ := newTestService(t)
	id := createSession(t, svc)

	ti, err := svc.InitializeTutorial(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &TutorialInit{
		Word:      "CARE",
		Solutions: domain.Solutions{"4": {"RACE", "ACRE"}},
		TimeLimit: 120,
	}, ti)
}

func TestInitializeTutorial_MalformedIDSkipsStore(t *testing.T) {
	svc := NewGameService(Stores{Sessions: untouchableSessions{t: t}})
	_, err := svc.InitializeTutorial(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.EqualError(t, err, "Invalid session ID format")
}

func TestNextAnagram(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc)

	next, err := svc.NextAnagram(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, "LISTEN", next.Word)
	assert.Equal(t, 1, next.Index)

	_, err = svc.NextAnagram(ctx, id, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.NextAnagram(ctx, id, -1)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompleteSession_MergesGameState(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc)

	require.NoError(t, svc.CompleteSession(ctx, id, map[string]any{"endTime": "2024-05-01T12:30:00Z"}))

	sess, err := store.Sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:30:00Z", sess.GameState["endTime"])
	assert.NotNil(t, sess.GameState["completionStatus"])

	err = svc.CompleteSession(ctx, "0b7e8d8e-0000-4000-8000-000000000009", map[string]any{"x": 1})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.CompleteSession(ctx, id, nil)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompleteTutorial(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc)

	err := svc.CompleteTutorial(ctx, TutorialCompletion{SessionID: id, ProlificID: "prolific-1"})
	require.NoError(t, err)

	sess, err := store.Sessions.GetByID(ctx, id)
	require.NoError(t, err)
	status := sess.PhaseStatus(domain.PhaseTutorial)
	assert.Equal(t, true, status["completed"])
	assert.Equal(t, fixedNow, status["completedAt"])
	assert.Equal(t, false, sess.PhaseStatus(domain.PhaseMainGame)["completed"])
}

func TestProcessMeaningSubmissions_Overwrites(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc)

	wrong := false
	first := domain.WordMeaningSubmission{
		SessionID: id,
		WordMeanings: []domain.WordMeaning{
			{Word: "MEAT", ProvidedMeaning: "food"},
			{Word: "TEAM", ProvidedMeaning: "group", IsCorrect: &wrong},
		},
		CompletedAt: fixedNow,
	}
	require.NoError(t, svc.ProcessMeaningSubmissions(ctx, first))

	sess, err := store.Sessions.GetByID(ctx, id)
	require.NoError(t, err)
	meanings, ok := sess.PhaseStatus(domain.PhaseMeaningCheck)["wordMeanings"].([]domain.WordMeaning)
	require.True(t, ok)
	require.Len(t, meanings, 2)
	assert.True(t, *meanings[0].IsCorrect)
	assert.False(t, *meanings[1].IsCorrect)

	second := domain.WordMeaningSubmission{
		SessionID:    id,
		WordMeanings: []domain.WordMeaning{{Word: "STEAM", ProvidedMeaning: " "}},
	}
	require.NoError(t, svc.ProcessMeaningSubmissions(ctx, second))

	sess, err = store.Sessions.GetByID(ctx, id)
	require.NoError(t, err)
	meanings = sess.PhaseStatus(domain.PhaseMeaningCheck)["wordMeanings"].([]domain.WordMeaning)
	require.Len(t, meanings, 1)
	assert.Equal(t, "STEAM", meanings[0].Word)
	assert.False(t, *meanings[0].IsCorrect)
}

func TestLogEvent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	anagram := "TEAMS"
	err := svc.LogEvent(ctx, domain.GameEvent{
		SessionID:    testSessionID,
		ProlificID:   "prolific-1",
		Phase:        domain.EventPhaseMainGame,
		EventType:    domain.EventWordSubmission,
		AnagramShown: &anagram,
		Details:      map[string]any{"word": "MEAT", "extra": nil},
	})
	require.NoError(t, err)

	docs := store.Events.All()
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, fixedNow, doc["timestamp"])
	assert.Equal(t, "TEAMS", doc["anagramShown"])
	assert.NotContains(t, doc, "currentTheoryId")
	assert.Equal(t, map[string]any{"word": "MEAT"}, doc["details"])

	err = svc.LogEvent(ctx, domain.GameEvent{SessionID: testSessionID, ProlificID: "p"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSubmitWordsAndGameResults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createSession(t, svc)

	claimed := true
	inflated := 999
	round := &domain.WordSubmission{
		SessionID:    id,
		ProlificID:   "prolific-1",
		Phase:        domain.EventPhaseMainGame,
		AnagramShown: "TEAMS",
		SubmittedWords: []domain.SubmittedWord{
			{Word: "MEAT", Length: 4},
			{Word: "SEAT", Length: 4, IsValid: &claimed, Reward: &inflated},
		},
	}
	require.NoError(t, svc.SubmitWords(ctx, round))
	assert.Equal(t, 10, round.TotalReward)
	assert.Equal(t, fixedNow, *round.SubmittedAt)

	tutorial := &domain.WordSubmission{
		SessionID:      id,
		ProlificID:     "prolific-1",
		Phase:          domain.EventPhaseTutorial,
		AnagramShown:   "CARE",
		SubmittedWords: []domain.SubmittedWord{{Word: "RACE", Length: 4}},
	}
	require.NoError(t, svc.SubmitWords(ctx, tutorial))

	res, err := svc.GameResults(ctx, id)
	require.NoError(t, err)
	require.Len(t, res.ValidWords, 1)
	assert.Equal(t, "MEAT", res.ValidWords[0].Word)
	require.Len(t, res.InvalidWords, 1)
	assert.Equal(t, "SEAT", res.InvalidWords[0].Word)
	assert.Equal(t, 10, res.TotalReward)
	require.Len(t, res.AnagramDetails, 1)
	assert.Equal(t, "TEAMS", res.AnagramDetails[0].Anagram)
}

func TestSubmitWords_InvalidSession(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.SubmitWords(context.Background(), &domain.WordSubmission{SessionID: "bad"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorUnwrap(t *testing.T) {
	err := notFound("Session not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidFormat))
	assert.Equal(t, "Session not found", err.Error())
}
