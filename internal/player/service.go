package player

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/errors"
)

// Store is the persistence surface the service needs. The Postgres
// implementation lives in this package; tests substitute an in-memory one.
type Store interface {
	InsertPlayer(ctx context.Context, p *domain.Player) error
	// GetPlayer returns a CodeNotFound error when no such player exists.
	GetPlayer(ctx context.Context, playerID string) (*domain.Player, error)
	// CountCorrectAccusations counts this player's completed sessions with
	// a correct accusation.
	CountCorrectAccusations(ctx context.Context, playerID string) (int64, error)
}

type Config struct {
	Store Store
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		store: c.Store,
		now:   c.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CreatePlayerRequest struct {
	Name  string
	Email *string
}

// CreatePlayer registers a new investigator with zero cumulative totals.
// A missing or blank name is rejected before any write.
func (s *Service) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*domain.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("player name is required"))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate player ID: %w", err)
	}

	p := &domain.Player{
		PlayerID:  id.String(),
		Name:      name,
		Email:     req.Email,
		CreatedAt: s.now(),
	}

	if err := s.store.InsertPlayer(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.store.GetPlayer(ctx, playerID)
}

// Stats are cumulative play statistics for one player.
type Stats struct {
	PlayerID           string
	Name               string
	TotalScore         int64
	GamesPlayed        int64
	CorrectAccusations int64
	// Accuracy is CorrectAccusations / GamesPlayed, zero when no games
	// have been played.
	Accuracy decimal.Decimal
}

func (s *Service) Stats(ctx context.Context, playerID string) (*Stats, error) {
	p, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	correct, err := s.store.CountCorrectAccusations(ctx, playerID)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		PlayerID:           p.PlayerID,
		Name:               p.Name,
		TotalScore:         p.TotalScore,
		GamesPlayed:        p.GamesPlayed,
		CorrectAccusations: correct,
		Accuracy:           decimal.Zero,
	}
	if p.GamesPlayed > 0 {
		st.Accuracy = decimal.NewFromInt(correct).
			DivRound(decimal.NewFromInt(p.GamesPlayed), 4)
	}

	return st, nil
}
