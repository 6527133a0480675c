package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwood/manor/internal/domain"
)

const maxConcurrentPublishes = 100

type (
	Notification struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}

	LeaderboardData struct {
		Rows []LeaderboardEntry `json:"rows"`
	}

	LeaderboardEntry struct {
		PlayerName string    `json:"player_name"`
		SessionID  string    `json:"session_id"`
		Score      int64     `json:"score"`
		EndedAt    time.Time `json:"ended_at"`
		Rank       int       `json:"rank"`
	}
)

// PublishLeaderboardUpdated pushes the fresh standings to every player that
// appears in them, one redis pub/sub channel per player.
func (a *API) PublishLeaderboardUpdated(ctx context.Context, e domain.EventLeaderboardUpdated) error {
	data := LeaderboardData{
		Rows: make([]LeaderboardEntry, 0, len(e.Rows)),
	}

	for _, r := range e.Rows {
		data.Rows = append(data.Rows, LeaderboardEntry{
			PlayerName: r.PlayerName,
			SessionID:  r.SessionID,
			Score:      r.TotalScore,
			EndedAt:    r.EndedAt,
			Rank:       r.Rank,
		})
	}

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentPublishes)

	for _, r := range e.Rows {
		r := r
		eg.Go(func() error {
			return a.publishNotification(ctx, r.PlayerID, e.Name(), data)
		})
	}

	return eg.Wait()
}

func (a *API) publishNotification(ctx context.Context, playerID, event string, data any) error {
	n := Notification{
		Event: event,
		Data:  data,
	}

	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %v", event, err)
	}

	return a.redis.Publish(ctx, fmt.Sprintf("%s:player:%s", a.prefix, playerID), b).Err()
}
