package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwood/manor/internal/api"
	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/errors"
	"github.com/blackwood/manor/internal/event"
	"github.com/blackwood/manor/internal/leaderboard"
	"github.com/blackwood/manor/internal/player"
	"github.com/blackwood/manor/internal/session"
)

func TestAPI_PlayerAndSessionFlow(t *testing.T) {
	ts := newTestServer(t)

	// Create a player.
	w := ts.do(http.MethodPost, "/api/game/player", `{"name": "Ada"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p struct {
		PlayerID    string `json:"player_id"`
		Name        string `json:"name"`
		TotalScore  int64  `json:"total_score"`
		GamesPlayed int64  `json:"games_played"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Ada", p.Name)
	assert.Zero(t, p.TotalScore)
	assert.Zero(t, p.GamesPlayed)

	// Open a session for the player.
	w = ts.do(http.MethodPost, "/api/game/session", `{"playerId": "`+p.PlayerID+`", "playerName": "Ada"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ss struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ss))
	assert.Equal(t, "active", ss.Status)

	// Accuse the killer.
	w = ts.do(http.MethodPut, "/api/game/session", `{"sessionId": "`+ss.SessionID+`", "accusedCharacterId": 1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var closed struct {
		SessionID  string `json:"session_id"`
		FinalScore int64  `json:"final_score"`
		IsCorrect  bool   `json:"is_correct"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &closed))
	assert.Equal(t, ss.SessionID, closed.SessionID)
	assert.Equal(t, int64(500), closed.FinalScore)
	assert.True(t, closed.IsCorrect)
	assert.Equal(t, "Correct! You found the killer!", closed.Message)

	// A repeat close conflicts instead of double-crediting.
	w = ts.do(http.MethodPut, "/api/game/session", `{"sessionId": "`+ss.SessionID+`", "accusedCharacterId": 1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The stats endpoint reflects the single credited game.
	w = ts.do(http.MethodGet, "/api/game/player/"+p.PlayerID+"/stats", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var st struct {
		TotalScore  int64  `json:"total_score"`
		GamesPlayed int64  `json:"games_played"`
		Accuracy    string `json:"accuracy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, int64(500), st.TotalScore)
	assert.Equal(t, int64(1), st.GamesPlayed)
	assert.Equal(t, "1", st.Accuracy)
}

func TestAPI_ErrorMapping(t *testing.T) {
	tests := map[string]struct {
		method string
		path   string
		body   string
		want   int
	}{
		"empty player name": {
			method: http.MethodPost, path: "/api/game/player",
			body: `{"name": "  "}`,
			want: http.StatusBadRequest,
		},
		"malformed body": {
			method: http.MethodPost, path: "/api/game/player",
			body: `{"name":`,
			want: http.StatusBadRequest,
		},
		"unknown player on session create": {
			method: http.MethodPost, path: "/api/game/session",
			body: `{"playerId": "ghost", "playerName": "Ghost"}`,
			want: http.StatusNotFound,
		},
		"unknown session on close": {
			method: http.MethodPut, path: "/api/game/session",
			body: `{"sessionId": "ghost", "accusedCharacterId": 1}`,
			want: http.StatusNotFound,
		},
		"bad data type": {
			method: http.MethodGet, path: "/api/game/data?type=suspects",
			want: http.StatusBadRequest,
		},
		"bad leaderboard limit": {
			method: http.MethodGet, path: "/api/game/data?type=leaderboard&limit=zero",
			want: http.StatusBadRequest,
		},
		"unknown player stats": {
			method: http.MethodGet, path: "/api/game/player/ghost/stats",
			want: http.StatusNotFound,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAPI_Leaderboard(t *testing.T) {
	ts := newTestServer(t)

	// Play two full sessions with different outcomes.
	for _, accused := range []int{1, 3} {
		w := ts.do(http.MethodPost, "/api/game/player", `{"name": "Ada"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var p struct {
			PlayerID string `json:"player_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

		w = ts.do(http.MethodPost, "/api/game/session", `{"playerId": "`+p.PlayerID+`", "playerName": "Ada"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var ss struct {
			SessionID string `json:"session_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ss))

		w = ts.do(http.MethodPut, "/api/game/session",
			`{"sessionId": "`+ss.SessionID+`", "accusedCharacterId": `+strconv.Itoa(accused)+`}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	ts.eb.Stop()

	w := ts.do(http.MethodGet, "/api/game/data?type=leaderboard&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []struct {
		SessionID    string `json:"session_id"`
		TotalScore   int64  `json:"total_score"`
		RankPosition int    `json:"rank_position"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int64(500), rows[0].TotalScore)
	assert.Equal(t, 1, rows[0].RankPosition)
	assert.Equal(t, int64(100), rows[1].TotalScore)
	assert.Equal(t, 2, rows[1].RankPosition)
}

type testServer struct {
	router *gin.Engine
	eb     *event.Bus
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, r)
	return w
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})

	st := newMemoryStore()
	eb := event.NewBus()

	ps := player.NewService(player.Config{Store: st})
	ss := session.NewService(session.Config{Store: st, EventBus: eb})
	ls := leaderboard.NewService(leaderboard.Config{
		EventBus: eb,
		Store:    st,
		Redis:    rc,
		Prefix:   "manor-test",
	})

	r := gin.New()
	api.New(api.Config{
		Router:       r,
		EventBus:     eb,
		Player:       ps,
		Session:      ss,
		Leaderboard:  ls,
		Redis:        rc,
		PubsubPrefix: "manor-test",
	})

	return &testServer{router: r, eb: eb}
}

// memoryStore backs all three services in handler tests.
type memoryStore struct {
	mu       sync.Mutex
	players  map[string]*domain.Player
	sessions map[string]*domain.GameSession
	killers  map[int]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		players:  make(map[string]*domain.Player),
		sessions: make(map[string]*domain.GameSession),
		killers:  map[int]bool{1: true, 2: false, 3: false, 4: false},
	}
}

func (m *memoryStore) InsertPlayer(_ context.Context, p *domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.players[p.PlayerID] = &cp
	return nil
}

func (m *memoryStore) GetPlayer(_ context.Context, playerID string) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("player not found: %s", playerID))
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) CountCorrectAccusations(_ context.Context, playerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, ss := range m.sessions {
		if ss.PlayerID == playerID && ss.Status == domain.SessionCompleted &&
			ss.IsCorrectAccusation != nil && *ss.IsCorrectAccusation {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) PlayerExists(_ context.Context, playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.players[playerID]
	return ok, nil
}

func (m *memoryStore) InsertSession(_ context.Context, ss *domain.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ss
	m.sessions[ss.SessionID] = &cp
	return nil
}

func (m *memoryStore) GetSession(_ context.Context, sessionID string) (*domain.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ss, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("session not found: %s", sessionID))
	}
	cp := *ss
	return &cp, nil
}

func (m *memoryStore) CharacterIsKiller(_ context.Context, characterID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.killers[characterID], nil
}

func (m *memoryStore) CompleteSession(_ context.Context, u session.CloseUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ss, ok := m.sessions[u.SessionID]
	if !ok || ss.Status != domain.SessionActive {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("session already completed: %s", u.SessionID))
	}

	ss.Status = domain.SessionCompleted
	ss.EndedAt = &u.EndedAt
	ss.TotalScore = u.FinalScore
	ss.TimeSpentSeconds = u.TimeSpentSeconds
	ss.AccusedCharacterID = &u.AccusedCharacterID
	ss.IsCorrectAccusation = &u.IsCorrect

	p := m.players[u.PlayerID]
	p.TotalScore += u.FinalScore
	p.GamesPlayed++
	p.LastPlayed = &u.EndedAt
	return nil
}

func (m *memoryStore) SessionRows(_ context.Context, sessionIDs []string) ([]domain.LeaderboardRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.LeaderboardRow, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		ss, ok := m.sessions[id]
		if !ok || ss.Status != domain.SessionCompleted {
			continue
		}
		out = append(out, m.rowLocked(ss))
	}
	return out, nil
}

func (m *memoryStore) TopRows(_ context.Context, limit int) ([]domain.LeaderboardRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.LeaderboardRow, 0, len(m.sessions))
	for _, ss := range m.sessions {
		if ss.Status == domain.SessionCompleted {
			out = append(out, m.rowLocked(ss))
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) rowLocked(ss *domain.GameSession) domain.LeaderboardRow {
	row := domain.LeaderboardRow{
		PlayerID:         ss.PlayerID,
		PlayerName:       ss.PlayerName,
		SessionID:        ss.SessionID,
		TotalScore:       ss.TotalScore,
		TimeSpentSeconds: ss.TimeSpentSeconds,
	}
	if ss.EndedAt != nil {
		row.EndedAt = *ss.EndedAt
	}
	return row
}
