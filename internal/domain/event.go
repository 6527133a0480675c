package domain

const (
	EventNameSessionClosed      = "session.closed"
	EventNameLeaderboardUpdated = "leaderboard.updated"
)

type EventSessionClosed struct {
	Session GameSession
}

func (EventSessionClosed) Name() string { return EventNameSessionClosed }

type EventLeaderboardUpdated struct {
	Rows []LeaderboardRow
}

func (EventLeaderboardUpdated) Name() string { return EventNameLeaderboardUpdated }
