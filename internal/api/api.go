package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/errors"
	"github.com/blackwood/manor/internal/event"
	"github.com/blackwood/manor/internal/leaderboard"
	"github.com/blackwood/manor/internal/player"
	"github.com/blackwood/manor/internal/session"
)

// requestTimeout bounds every storage round trip; handlers fail fast
// instead of hanging on a stuck backend.
const requestTimeout = 10 * time.Second

const defaultLeaderboardLimit = 10

type Config struct {
	Router       gin.IRouter
	EventBus     *event.Bus
	Player       *player.Service
	Session      *session.Service
	Leaderboard  *leaderboard.Service
	Redis        Redis
	PubsubPrefix string
}

type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type API struct {
	ps *player.Service
	ss *session.Service
	ls *leaderboard.Service

	redis  Redis
	prefix string
}

func New(c Config) *API {
	a := &API{
		ps:     c.Player,
		ss:     c.Session,
		ls:     c.Leaderboard,
		redis:  c.Redis,
		prefix: c.PubsubPrefix,
	}

	g := c.Router.Group("/api/game")
	g.POST("/player", a.createPlayer)
	g.GET("/player/:id/stats", a.playerStats)
	g.POST("/session", a.createSession)
	g.PUT("/session", a.closeSession)
	g.GET("/data", a.getData)

	c.EventBus.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
		return a.PublishLeaderboardUpdated(ctx, e.(domain.EventLeaderboardUpdated))
	})

	return a
}

func (a *API) createPlayer(c *gin.Context) {
	var req struct {
		Name  string  `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	p, err := a.ps.CreatePlayer(ctx, player.CreatePlayerRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPlayerJSON(p))
}

func (a *API) playerStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	st, err := a.ps.Stats(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsJSON{
		PlayerID:           st.PlayerID,
		Name:               st.Name,
		TotalScore:         st.TotalScore,
		GamesPlayed:        st.GamesPlayed,
		CorrectAccusations: st.CorrectAccusations,
		Accuracy:           st.Accuracy.String(),
	})
}

func (a *API) createSession(c *gin.Context) {
	var req struct {
		PlayerID   string `json:"playerId"`
		PlayerName string `json:"playerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ss, err := a.ss.CreateSession(ctx, session.CreateSessionRequest{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionJSON(ss))
}

func (a *API) closeSession(c *gin.Context) {
	var req struct {
		SessionID          string `json:"sessionId"`
		AccusedCharacterID int    `json:"accusedCharacterId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := a.ss.CloseSession(ctx, session.CloseSessionRequest{
		SessionID:          req.SessionID,
		AccusedCharacterID: req.AccusedCharacterID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, closeJSON{
		SessionID:  resp.SessionID,
		FinalScore: resp.FinalScore,
		IsCorrect:  resp.IsCorrect,
		Message:    resp.Message,
	})
}

func (a *API) getData(c *gin.Context) {
	if c.Query("type") != "leaderboard" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type parameter"})
		return
	}

	limit := defaultLeaderboardLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rows, err := a.ls.Top(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]leaderboardRowJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLeaderboardRowJSON(r))
	}
	c.JSON(http.StatusOK, out)
}

func respondError(c *gin.Context, err error) {
	e := errors.Convert(err)
	c.JSON(e.HTTPStatusCode(), gin.H{"error": e.Message})
}
