package api

import (
	"time"

	"github.com/blackwood/manor/internal/domain"
)

type playerJSON struct {
	PlayerID    string     `json:"player_id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	TotalScore  int64      `json:"total_score"`
	GamesPlayed int64      `json:"games_played"`
	LastPlayed  *time.Time `json:"last_played"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toPlayerJSON(p *domain.Player) playerJSON {
	return playerJSON{
		PlayerID:    p.PlayerID,
		Name:        p.Name,
		Email:       p.Email,
		TotalScore:  p.TotalScore,
		GamesPlayed: p.GamesPlayed,
		LastPlayed:  p.LastPlayed,
		CreatedAt:   p.CreatedAt,
	}
}

type sessionJSON struct {
	SessionID           string     `json:"session_id"`
	PlayerID            string     `json:"player_id"`
	PlayerName          string     `json:"player_name"`
	StartedAt           time.Time  `json:"started_at"`
	EndedAt             *time.Time `json:"ended_at"`
	Status              string     `json:"status"`
	TotalScore          int64      `json:"total_score"`
	TimeSpentSeconds    int64      `json:"time_spent_seconds"`
	AccusedCharacterID  *int       `json:"accused_character_id"`
	IsCorrectAccusation *bool      `json:"is_correct_accusation"`
}

func toSessionJSON(ss *domain.GameSession) sessionJSON {
	return sessionJSON{
		SessionID:           ss.SessionID,
		PlayerID:            ss.PlayerID,
		PlayerName:          ss.PlayerName,
		StartedAt:           ss.StartedAt,
		EndedAt:             ss.EndedAt,
		Status:              string(ss.Status),
		TotalScore:          ss.TotalScore,
		TimeSpentSeconds:    ss.TimeSpentSeconds,
		AccusedCharacterID:  ss.AccusedCharacterID,
		IsCorrectAccusation: ss.IsCorrectAccusation,
	}
}

type closeJSON struct {
	SessionID  string `json:"session_id"`
	FinalScore int64  `json:"final_score"`
	IsCorrect  bool   `json:"is_correct"`
	Message    string `json:"message"`
}

type leaderboardRowJSON struct {
	PlayerID         string    `json:"player_id"`
	Name             string    `json:"name"`
	SessionID        string    `json:"session_id"`
	TotalScore       int64     `json:"total_score"`
	TimeSpentSeconds int64     `json:"time_spent_seconds"`
	EndedAt          time.Time `json:"ended_at"`
	RankPosition     int       `json:"rank_position"`
}

func toLeaderboardRowJSON(r domain.LeaderboardRow) leaderboardRowJSON {
	return leaderboardRowJSON{
		PlayerID:         r.PlayerID,
		Name:             r.PlayerName,
		SessionID:        r.SessionID,
		TotalScore:       r.TotalScore,
		TimeSpentSeconds: r.TimeSpentSeconds,
		EndedAt:          r.EndedAt,
		RankPosition:     r.Rank,
	}
}

type statsJSON struct {
	PlayerID           string `json:"player_id"`
	Name               string `json:"name"`
	TotalScore         int64  `json:"total_score"`
	GamesPlayed        int64  `json:"games_played"`
	CorrectAccusations int64  `json:"correct_accusations"`
	Accuracy           string `json:"accuracy"`
}
