package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/event"
)

const (
	publishInterval = 200 * time.Millisecond
	publishTopN     = 10
)

// Store hydrates leaderboard rows from the durable session records. The
// Postgres implementation lives in this package.
type Store interface {
	// SessionRows returns rows for the given completed sessions, in any order.
	SessionRows(ctx context.Context, sessionIDs []string) ([]domain.LeaderboardRow, error)
	// TopRows returns up to limit rows ordered by score desc, elapsed asc.
	TopRows(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
}

type Config struct {
	EventBus *event.Bus
	Store    Store
	Redis    redis.UniversalClient
	Prefix   string
}

// Service keeps a redis sorted-set projection of completed sessions and
// serves ranked reads from it, falling back to SQL on a cold cache.
type Service struct {
	eb     *event.Bus
	store  Store
	redis  redis.UniversalClient
	prefix string
}

func NewService(c Config) *Service {
	s := &Service{
		eb:     c.EventBus,
		store:  c.Store,
		redis:  c.Redis,
		prefix: c.Prefix,
	}

	s.eb.Subscribe(domain.EventNameSessionClosed, func(ctx context.Context, e event.Event) error {
		return s.HandleSessionClosed(ctx, e.(domain.EventSessionClosed))
	})

	return s
}

// HandleSessionClosed records the closed session's score in the sorted set
// and schedules a leaderboard.updated publish.
func (s *Service) HandleSessionClosed(ctx context.Context, e domain.EventSessionClosed) error {
	ss := e.Session

	if err := s.redis.ZAdd(ctx, s.setKey(), redis.Z{
		Score:  float64(ss.TotalScore),
		Member: ss.SessionID,
	}).Err(); err != nil {
		return fmt.Errorf("update leaderboard: %w", err)
	}

	return s.schedulePublish(ctx)
}

// schedulePublish coalesces bursts of closed sessions: only the first close
// within the interval triggers a publish, the rest ride along on the next
// one.
func (s *Service) schedulePublish(ctx context.Context) error {
	ok, err := s.redis.SetNX(ctx, s.timeKey(), time.Now().UnixMilli(), publishInterval).Result()
	if err != nil {
		return fmt.Errorf("setnx: %w", err)
	}

	if !ok {
		return nil
	}

	rows, err := s.Top(ctx, publishTopN)
	if err != nil {
		return fmt.Errorf("publish leaderboard: %w", err)
	}

	s.eb.Publish(ctx, domain.EventLeaderboardUpdated{Rows: rows})
	return nil
}

// Top returns the limit best completed sessions, ranked by score and then
// by the shorter solve time. An empty sorted set (e.g. right after a
// restart) falls back to the SQL projection.
func (s *Service) Top(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	if limit <= 0 {
		limit = publishTopN
	}

	ids, err := s.redis.ZRevRange(ctx, s.setKey(), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard set: %w", err)
	}

	if len(ids) == 0 {
		rows, err := s.store.TopRows(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("read leaderboard rows: %w", err)
		}
		rank(rows)
		return rows, nil
	}

	rows, err := s.store.SessionRows(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate leaderboard rows: %w", err)
	}

	rank(rows)
	return rows, nil
}

// rank orders rows by score desc, elapsed asc, ended_at asc and numbers
// them from 1.
func rank(rows []domain.LeaderboardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		if rows[i].TimeSpentSeconds != rows[j].TimeSpentSeconds {
			return rows[i].TimeSpentSeconds < rows[j].TimeSpentSeconds
		}
		return rows[i].EndedAt.Before(rows[j].EndedAt)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

func (s *Service) setKey() string {
	return fmt.Sprintf("%s:leaderboard", s.prefix)
}

func (s *Service) timeKey() string {
	return fmt.Sprintf("%s:leaderboard:time", s.prefix)
}
