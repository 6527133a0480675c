package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/errors"
	"github.com/blackwood/manor/internal/event"
)

const (
	scoreCorrect = 500
	scoreWrong   = 100

	messageCorrect = "Correct! You found the killer!"
	messageWrong   = "Wrong accusation!"
)

// Store is the persistence surface the service needs. The Postgres
// implementation lives in this package; tests substitute an in-memory one.
type Store interface {
	// PlayerExists reports whether the player row is present.
	PlayerExists(ctx context.Context, playerID string) (bool, error)
	InsertSession(ctx context.Context, ss *domain.GameSession) error
	// GetSession returns a CodeNotFound error when no such session exists.
	GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error)
	// CharacterIsKiller reports the character's killer flag. A missing
	// character is (false, nil): an unknown accusation is a wrong guess,
	// not an error.
	CharacterIsKiller(ctx context.Context, characterID int) (bool, error)
	// CompleteSession atomically marks the session completed and credits
	// the owning player; both writes commit or neither does. It must
	// guard on the active status and return a CodeAlreadyExists error if
	// the session was closed in the meantime.
	CompleteSession(ctx context.Context, u CloseUpdate) error
}

// CloseUpdate carries the one-shot completion write for a session and the
// matching player credit.
type CloseUpdate struct {
	SessionID          string
	PlayerID           string
	EndedAt            time.Time
	FinalScore         int64
	TimeSpentSeconds   int64
	AccusedCharacterID int
	IsCorrect          bool
}

type Config struct {
	Store    Store
	EventBus *event.Bus
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type Service struct {
	store Store
	eb    *event.Bus
	now   func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		store: c.Store,
		eb:    c.EventBus,
		now:   c.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CreateSessionRequest struct {
	PlayerID   string
	PlayerName string
}

// CreateSession opens an active game session for an existing player.
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.GameSession, error) {
	ok, err := s.store.PlayerExists(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("player not found: %s", req.PlayerID))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	ss := &domain.GameSession{
		SessionID:  id.String(),
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		StartedAt:  s.now(),
		Status:     domain.SessionActive,
	}

	if err := s.store.InsertSession(ctx, ss); err != nil {
		return nil, err
	}

	return ss, nil
}

type CloseSessionRequest struct {
	SessionID          string
	AccusedCharacterID int
}

type CloseSessionResponse struct {
	SessionID  string
	FinalScore int64
	IsCorrect  bool
	Message    string
}

// CloseSession scores the accusation and completes the session: 500 points
// for naming the killer, 100 otherwise. The session write and the player
// credit happen in one transaction, and a session can only be closed once;
// a repeat close is rejected with a conflict.
func (s *Service) CloseSession(ctx context.Context, req CloseSessionRequest) (*CloseSessionResponse, error) {
	ss, err := s.store.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if ss.Status == domain.SessionCompleted {
		return nil, errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("session already completed: %s", req.SessionID))
	}

	isKiller, err := s.store.CharacterIsKiller(ctx, req.AccusedCharacterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := CloseUpdate{
		SessionID:          ss.SessionID,
		PlayerID:           ss.PlayerID,
		EndedAt:            now,
		FinalScore:         scoreWrong,
		TimeSpentSeconds:   elapsedSeconds(ss.StartedAt, now),
		AccusedCharacterID: req.AccusedCharacterID,
		IsCorrect:          isKiller,
	}
	if isKiller {
		u.FinalScore = scoreCorrect
	}

	if err := s.store.CompleteSession(ctx, u); err != nil {
		return nil, err
	}

	closed := *ss
	closed.Status = domain.SessionCompleted
	closed.EndedAt = &u.EndedAt
	closed.TotalScore = u.FinalScore
	closed.TimeSpentSeconds = u.TimeSpentSeconds
	closed.AccusedCharacterID = &u.AccusedCharacterID
	closed.IsCorrectAccusation = &u.IsCorrect

	s.eb.Publish(ctx, domain.EventSessionClosed{Session: closed})

	resp := &CloseSessionResponse{
		SessionID:  ss.SessionID,
		FinalScore: u.FinalScore,
		IsCorrect:  isKiller,
		Message:    messageWrong,
	}
	if isKiller {
		resp.Message = messageCorrect
	}

	return resp, nil
}

// elapsedSeconds floors to whole seconds and clamps clock skew to zero.
func elapsedSeconds(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
