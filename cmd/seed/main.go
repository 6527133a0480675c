// Command seed creates the game schema and loads the static suspect roster.
// It is idempotent and safe to re-run.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/blackwood/manor/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	player_id    UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT,
	total_score  BIGINT NOT NULL DEFAULT 0,
	games_played BIGINT NOT NULL DEFAULT 0,
	last_played  TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS game_sessions (
	session_id            UUID PRIMARY KEY,
	player_id             UUID NOT NULL REFERENCES players (player_id),
	player_name           TEXT NOT NULL,
	started_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	ended_at              TIMESTAMPTZ,
	status                TEXT NOT NULL DEFAULT 'active',
	total_score           BIGINT NOT NULL DEFAULT 0,
	time_spent_seconds    BIGINT NOT NULL DEFAULT 0,
	accused_character_id  INT,
	is_correct_accusation BOOLEAN
);

CREATE TABLE IF NOT EXISTS game_characters (
	character_id INT PRIMARY KEY,
	name         TEXT NOT NULL,
	is_killer    BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_sessions_player_id ON game_sessions (player_id);
CREATE INDEX IF NOT EXISTS idx_sessions_score ON game_sessions (total_score DESC, time_spent_seconds ASC);
`

var suspects = []domain.Character{
	{CharacterID: 1, Name: "Miss Catherine", IsKiller: true},
	{CharacterID: 2, Name: "Dr. Whitmore"},
	{CharacterID: 3, Name: "Mr. Cornelius"},
	{CharacterID: 4, Name: "Lady Margaret"},
}

func main() {
	// .env is optional; a missing file just means the URL comes from the
	// real environment.
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		log.Fatalf("Connect to postgres failed: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema); err != nil {
		log.Fatalf("Create schema failed: %v", err)
	}

	const stmt = `
INSERT INTO game_characters (character_id, name, is_killer)
VALUES ($1, $2, $3)
ON CONFLICT (character_id) DO UPDATE SET name = $2, is_killer = $3;`

	for _, s := range suspects {
		if _, err := conn.Exec(ctx, stmt, s.CharacterID, s.Name, s.IsKiller); err != nil {
			log.Fatalf("Seed character %q failed: %v", s.Name, err)
		}
	}

	log.Printf("Seeded schema and %d characters", len(suspects))
}
