package session

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

func (s *PostgresStore) PlayerExists(ctx context.Context, playerID string) (bool, error) {
	const stmt = `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1);`

	var ok bool
	if err := s.db.QueryRow(ctx, stmt, playerID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check player exists: %w", err)
	}

	return ok, nil
}

func (s *PostgresStore) InsertSession(ctx context.Context, ss *domain.GameSession) error {
	const stmt = `
INSERT INTO game_sessions (session_id, player_id, player_name, started_at, status)
VALUES ($1, $2, $3, $4, $5);`

	_, err := s.db.Exec(ctx, stmt, ss.SessionID, ss.PlayerID, ss.PlayerName, ss.StartedAt, ss.Status)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	const stmt = `
SELECT session_id, player_id, player_name, started_at, ended_at, status,
       total_score, time_spent_seconds, accused_character_id, is_correct_accusation
FROM game_sessions
WHERE session_id = $1;`

	var ss domain.GameSession
	err := s.db.QueryRow(ctx, stmt, sessionID).Scan(
		&ss.SessionID, &ss.PlayerID, &ss.PlayerName, &ss.StartedAt, &ss.EndedAt, &ss.Status,
		&ss.TotalScore, &ss.TimeSpentSeconds, &ss.AccusedCharacterID, &ss.IsCorrectAccusation,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("session not found: %s", sessionID))
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &ss, nil
}

func (s *PostgresStore) CharacterIsKiller(ctx context.Context, characterID int) (bool, error) {
	const stmt = `SELECT is_killer FROM game_characters WHERE character_id = $1;`

	var isKiller bool
	err := s.db.QueryRow(ctx, stmt, characterID).Scan(&isKiller)
	if stderrors.Is(err, pgx.ErrNoRows) {
		// Accusing a character we have never heard of scores as a wrong
		// guess, not an error.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get character: %w", err)
	}

	return isKiller, nil
}

func (s *PostgresStore) CompleteSession(ctx context.Context, u CloseUpdate) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = stderrors.Join(err, tx.Rollback(ctx))
		}
	}()

	const closeStmt = `
UPDATE game_sessions
SET status = 'completed',
    ended_at = $2,
    total_score = $3,
    time_spent_seconds = $4,
    accused_character_id = $5,
    is_correct_accusation = $6
WHERE session_id = $1 AND status = 'active';`

	tag, err := tx.Exec(ctx, closeStmt,
		u.SessionID, u.EndedAt, u.FinalScore, u.TimeSpentSeconds, u.AccusedCharacterID, u.IsCorrect)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	// A concurrent double close matches zero rows here and never
	// credits the player twice.
	if tag.RowsAffected() == 0 {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("session already completed: %s", u.SessionID))
	}

	const creditStmt = `
UPDATE players
SET total_score = total_score + $2,
    games_played = games_played + 1,
    last_played = $3
WHERE player_id = $1;`

	if _, err = tx.Exec(ctx, creditStmt, u.PlayerID, u.FinalScore, u.EndedAt); err != nil {
		return fmt.Errorf("credit player: %w", err)
	}

	return tx.Commit(ctx)
}
