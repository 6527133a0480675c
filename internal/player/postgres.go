package player

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blackwood/manor/internal/domain"
	"github.com/blackwood/manor/internal/errors"
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertPlayer(ctx context.Context, p *domain.Player) error {
	const stmt = `
INSERT INTO players (player_id, name, email, total_score, games_played, created_at)
VALUES ($1, $2, $3, 0, 0, $4);`

	if _, err := s.db.Exec(ctx, stmt, p.PlayerID, p.Name, p.Email, p.CreatedAt); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	const stmt = `
SELECT player_id, name, email, total_score, games_played, last_played, created_at
FROM players
WHERE player_id = $1;`

	var p domain.Player
	err := s.db.QueryRow(ctx, stmt, playerID).Scan(
		&p.PlayerID, &p.Name, &p.Email, &p.TotalScore, &p.GamesPlayed, &p.LastPlayed, &p.CreatedAt,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("player not found: %s", playerID))
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	return &p, nil
}

func (s *PostgresStore) CountCorrectAccusations(ctx context.Context, playerID string) (int64, error) {
	const stmt = `
SELECT COUNT(*)
FROM game_sessions
WHERE player_id = $1 AND status = 'completed' AND is_correct_accusation;`

	var n int64
	if err := s.db.QueryRow(ctx, stmt, playerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count correct accusations: %w", err)
	}

	return n, nil
}
