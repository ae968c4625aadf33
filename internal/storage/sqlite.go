// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-jumper/internal/match"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished match as stored.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Mode      string
	MapID     string
	Seed      int64
	Winner    string // Empty on a draw
	EndReason string // "completed", "tick_limit", "aborted"
	Ticks     uint64
	Duration  float64 // Simulated seconds
	StartedAt time.Time
	CreatedAt time.Time
	Players   []PlayerRecord
}

// PlayerRecord is one seat of a stored match.
type PlayerRecord struct {
	Slot   int
	Name   string
	Bot    bool
	Kills  int
	Alive  bool
	DiedAt uint64
}

// KillRecord is one stored elimination.
type KillRecord struct {
	Tick   uint64
	Killer string // Empty when nobody got credit
	Victim string
	Weapon string
}

// LeaderboardEntry aggregates one player name across matches.
type LeaderboardEntry struct {
	Name    string
	Matches int
	Wins    int
	Kills   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			map_id TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);

		CREATE TABLE IF NOT EXISTS match_players (
			match_id TEXT NOT NULL,
			slot INTEGER NOT NULL,
			name TEXT NOT NULL,
			bot INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			alive INTEGER NOT NULL DEFAULT 0,
			died_at INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, slot)
		);
		CREATE INDEX IF NOT EXISTS idx_match_players_name ON match_players(name);

		CREATE TABLE IF NOT EXISTS kills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			killer TEXT,
			victim TEXT NOT NULL,
			weapon TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_kills_match_id ON kills(match_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match with its players and kills.
// Returns the ID of the inserted match row.
func (s *Store) SaveMatch(ctx context.Context, r match.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO matches
		 (match_id, mode, map_id, seed, winner, end_reason, ticks, duration_secs, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.MatchID),
		r.Mode.String(),
		r.MapID,
		r.Seed,
		nullString(r.Winner),
		r.Reason.String(),
		int64(r.Ticks), //nolint:gosec // tick counts stay far below MaxInt64
		r.Duration,
		r.StartedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, p := range r.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO match_players (match_id, slot, name, bot, kills, alive, died_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(r.MatchID), int(p.Slot), p.Name, p.Bot, p.Kills, p.Alive, int64(p.DiedAt), //nolint:gosec // tick
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save player %s: %w", p.Name, err)
		}
	}

	for _, k := range r.Kills {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kills (match_id, tick, killer, victim, weapon) VALUES (?, ?, ?, ?, ?)`,
			string(r.MatchID), int64(k.Tick), nullString(k.Killer), k.Victim, k.Weapon, //nolint:gosec // tick
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save kill: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

// SaveResult implements match.ResultSaver.
func (s *Store) SaveResult(ctx context.Context, r match.Result) error {
	_, err := s.SaveMatch(ctx, r)
	return err
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

const matchColumns = `id, match_id, mode, map_id, seed, winner, end_reason, ticks, duration_secs, started_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var m MatchRecord
	var winner sql.NullString
	var ticks, startedAt int64
	var createdAt any

	if err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.Mode,
		&m.MapID,
		&m.Seed,
		&winner,
		&m.EndReason,
		&ticks,
		&m.Duration,
		&startedAt,
		&createdAt,
	); err != nil {
		return m, err
	}

	m.Winner = winner.String
	m.Ticks = uint64(ticks) //nolint:gosec // stored from a uint64
	m.StartedAt = time.UnixMilli(startedAt)
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// MatchByID retrieves a match with its players by match ID.
// Returns nil without error when the match does not exist.
func (s *Store) MatchByID(ctx context.Context, matchID string) (*MatchRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if m.Players, err = s.playersFor(ctx, m.MatchID); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty mode matches every mode.
func (s *Store) RecentMatches(ctx context.Context, mode string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range results {
		if results[i].Players, err = s.playersFor(ctx, results[i].MatchID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *Store) playersFor(ctx context.Context, matchID string) ([]PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, name, bot, kills, alive, died_at
		 FROM match_players
		 WHERE match_id = ?
		 ORDER BY slot`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		var diedAt int64
		if err := rows.Scan(&p.Slot, &p.Name, &p.Bot, &p.Kills, &p.Alive, &diedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player: %w", err)
		}
		p.DiedAt = uint64(diedAt) //nolint:gosec // stored from a uint64
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// KillsForMatch retrieves the kills of a match in the order they happened.
func (s *Store) KillsForMatch(ctx context.Context, matchID string) ([]KillRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, killer, victim, weapon
		 FROM kills
		 WHERE match_id = ?
		 ORDER BY tick, id`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query kills: %w", err)
	}
	defer rows.Close()

	var kills []KillRecord
	for rows.Next() {
		var k KillRecord
		var tick int64
		var killer sql.NullString
		if err := rows.Scan(&tick, &killer, &k.Victim, &k.Weapon); err != nil {
			return nil, fmt.Errorf("storage: cannot scan kill: %w", err)
		}
		k.Tick = uint64(tick) //nolint:gosec // stored from a uint64
		k.Killer = killer.String
		kills = append(kills, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return kills, nil
}

// Leaderboard ranks player names by wins, then kills.
// An empty mode aggregates every mode.
func (s *Store) Leaderboard(ctx context.Context, mode string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.name,
		        COUNT(*),
		        SUM(CASE WHEN m.winner = p.name THEN 1 ELSE 0 END),
		        SUM(p.kills)
		 FROM match_players p
		 JOIN matches m ON m.match_id = p.match_id
		 WHERE ? = '' OR m.mode = ?
		 GROUP BY p.name
		 ORDER BY 3 DESC, 4 DESC, p.name
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Matches, &e.Wins, &e.Kills); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearMatches deletes the history of one mode, or of every mode when
// mode is empty. Returns the number of matches removed.
func (s *Store) ClearMatches(ctx context.Context, mode string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const selected = `SELECT match_id FROM matches WHERE ? = '' OR mode = ?`
	for _, table := range []string{"kills", "match_players"} {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE match_id IN (`+selected+`)`, mode, mode); err != nil {
			return 0, fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE ? = '' OR mode = ?`, mode, mode)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared matches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
