package domain

import (
	"time"
)

// SessionStatus is the lifecycle state of a GameSession.
// The only transition is active -> completed, and completed is terminal.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Player is a registered investigator. Cumulative totals only ever increase.
type Player struct {
	PlayerID    string
	Name        string
	Email       *string
	TotalScore  int64
	GamesPlayed int64
	LastPlayed  *time.Time
	CreatedAt   time.Time
}

// GameSession is a single play-through from start to accusation.
// Completion fields stay nil/zero until the session is closed and are
// written exactly once.
type GameSession struct {
	SessionID           string
	PlayerID            string
	PlayerName          string
	StartedAt           time.Time
	EndedAt             *time.Time
	Status              SessionStatus
	TotalScore          int64
	TimeSpentSeconds    int64
	AccusedCharacterID  *int
	IsCorrectAccusation *bool
}

// Character is a suspect from the static roster. Read-only at runtime.
type Character struct {
	CharacterID int
	Name        string
	IsKiller    bool
}

// Clue is a narrative (text, category) pair awarded on room completion.
// Clues live only in the client's in-memory state and are never persisted.
type Clue struct {
	Text     string
	Category string
}

// LeaderboardRow is a read-only projection joining a completed session to
// its player for display. Rank starts at 1.
type LeaderboardRow struct {
	PlayerID         string
	PlayerName       string
	SessionID        string
	TotalScore       int64
	TimeSpentSeconds int64
	EndedAt          time.Time
	Rank             int
}
