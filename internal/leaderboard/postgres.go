package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackwood/manor/internal/domain"
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const rowColumns = `
SELECT p.player_id, p.name, s.session_id, s.total_score, s.time_spent_seconds, s.ended_at
FROM game_sessions s
JOIN players p ON p.player_id = s.player_id
WHERE s.status = 'completed'`

func (s *PostgresStore) SessionRows(ctx context.Context, sessionIDs []string) ([]domain.LeaderboardRow, error) {
	stmt := rowColumns + ` AND s.session_id = ANY($1);`

	rows, err := s.db.Query(ctx, stmt, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("query session rows: %w", err)
	}

	return collectRows(rows)
}

func (s *PostgresStore) TopRows(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	stmt := rowColumns + `
ORDER BY s.total_score DESC, s.time_spent_seconds ASC, s.ended_at ASC
LIMIT $1;`

	rows, err := s.db.Query(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("query top rows: %w", err)
	}

	out, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Rank = i + 1
	}

	return out, nil
}

func collectRows(rows pgx.Rows) ([]domain.LeaderboardRow, error) {
	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.LeaderboardRow, error) {
		var row domain.LeaderboardRow
		err := r.Scan(&row.PlayerID, &row.PlayerName, &row.SessionID,
			&row.TotalScore, &row.TimeSpentSeconds, &row.EndedAt)
		return row, err
	})
}
