package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdpmukherjee/anagram-game-cheating-detection/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestSessionRepository_GetByProlificID(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM sessions WHERE prolific_id`).
		WithArgs("p-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "prolific_id", "metadata", "game_state", "created_at"}).
			AddRow("5b7c2f0e-8d1a-4c1e-9d8f-2a3b4c5d6e7f", "p-1",
				[]byte(`{"browser":"firefox","screenSize":{"width":1280}}`),
				[]byte(`{"completionStatus":{"tutorial":{"completed":false}}}`),
				created))

	s, err := NewSessionRepository(mock).GetByProlificID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "5b7c2f0e-8d1a-4c1e-9d8f-2a3b4c5d6e7f", s.ID)
	assert.Equal(t, "firefox", s.Metadata.Browser)
	assert.Equal(t, 1280, s.Metadata.ScreenSize["width"])
	assert.Equal(t, false, s.PhaseStatus(domain.PhaseTutorial)["completed"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM sessions WHERE id`).
		WithArgs("5b7c2f0e-8d1a-4c1e-9d8f-2a3b4c5d6e7f").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewSessionRepository(mock).GetByID(context.Background(), "5b7c2f0e-8d1a-4c1e-9d8f-2a3b4c5d6e7f")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Create_Duplicate(t *testing.T) {
	mock := newMock(t)
	s := domain.NewSession("5b7c2f0e-8d1a-4c1e-9d8f-2a3b4c5d6e7f", "p-1", domain.Metadata{Browser: "chrome"}, time.Now())

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(s.ID, s.ProlificID, pgxmock.AnyArg(), pgxmock.AnyArg(), s.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewSessionRepository(mock).Create(context.Background(), s)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SetPhaseStatus(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock)
	entry := domain.CompletedPhase(time.Now(), "wordMeanings", []domain.WordMeaning{{Word: "TEAM"}})

	mock.ExpectExec(`UPDATE sessions`).
		WithArgs("id-1", domain.PhaseMeaningCheck, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE sessions`).
		WithArgs("id-2", domain.PhaseMeaningCheck, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.SetPhaseStatus(context.Background(), "id-1", domain.PhaseMeaningCheck, entry))
	assert.ErrorIs(t, repo.SetPhaseStatus(context.Background(), "id-2", domain.PhaseMeaningCheck, entry), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Get(t *testing.T) {
	mock := newMock(t)
	doc := []byte(`{
		"game_anagrams": [{"word": "MASTER", "solutions": {"4": ["TEAM"]}}],
		"tutorial_anagrams": {"word": "CAT", "solutions": {"3": ["ACT"]}},
		"time_settings": {"game_time": 180, "tutorial_time": 60, "survey_time": 300},
		"rewards": {"4": 5}
	}`)
	mock.ExpectQuery(`SELECT doc FROM game_config`).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow(doc))

	cfg, err := NewConfigRepository(mock).Get(context.Background())
	require.NoError(t, err)
	require.Len(t, cfg.GameAnagrams, 1)
	assert.Equal(t, []string{"TEAM"}, cfg.GameAnagrams[0].Solutions["4"])
	assert.Equal(t, "CAT", cfg.TutorialAnagram.Word)
	assert.Equal(t, 60, cfg.TimeSettings.TutorialTime)
	assert.Equal(t, 5, cfg.Rewards["4"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListAndIncrement(t *testing.T) {
	mock := newMock(t)
	repo := NewMessageRepository(mock)

	mock.ExpectQuery(`SELECT id, text, shown_count FROM anti_cheating_messages`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "text", "shown_count"}).
			AddRow(1, "one", 2).
			AddRow(2, "two", 0))
	mock.ExpectExec(`UPDATE anti_cheating_messages SET shown_count = shown_count \+ 1`).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	messages, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.AntiCheatingMessage{{ID: 1, Text: "one", ShownCount: 2}, {ID: 2, Text: "two", ShownCount: 0}}, messages)

	require.NoError(t, repo.IncrementShown(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Insert(t *testing.T) {
	mock := newMock(t)
	doc := domain.GameEvent{SessionID: "s", ProlificID: "p", Phase: "tutorial", EventType: "game_init"}.Document(time.Now())

	mock.ExpectExec(`INSERT INTO game_events`).
		WithArgs("s", "p", "tutorial", "game_init", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewEventRepository(mock).Insert(context.Background(), doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_ListBySession(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT doc FROM word_submissions WHERE session_id`).
		WithArgs("s").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"sessionId":"s","anagramShown":"MASTER","submittedWords":[{"word":"TEAM","length":4,"isValid":true,"reward":5}],"totalReward":5}`)))

	subs, err := NewSubmissionRepository(mock).ListBySession(context.Background(), "s")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "MASTER", subs[0].AnagramShown)
	assert.True(t, subs[0].SubmittedWords[0].Valid())
	assert.NoError(t, mock.ExpectationsWereMet())
}
