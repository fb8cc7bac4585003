// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/codestreak/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// legacyTagSeparator joined tags in databases written before tags were
// stored as JSON arrays.
const legacyTagSeparator = ","

// Store wraps SQLite access for generated activity.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			platform TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			seed INTEGER NOT NULL,
			target_total INTEGER NOT NULL,
			target_easy INTEGER NOT NULL,
			target_medium INTEGER NOT NULL,
			target_hard INTEGER NOT NULL,
			event_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT NOT NULL,
			run_id INTEGER NOT NULL,
			platform TEXT NOT NULL,
			problem_title TEXT NOT NULL,
			problem_url TEXT NOT NULL,
			tags TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			solved_date TEXT NOT NULL,
			language TEXT NOT NULL,
			time_spent INTEGER NOT NULL,
			is_accepted INTEGER NOT NULL,
			attempt_count INTEGER NOT NULL,
			PRIMARY KEY (run_id, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_platform ON runs(platform);`,
		`CREATE INDEX IF NOT EXISTS idx_events_run_date ON events(run_id, solved_date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a generation run and its events.
func (s *Store) InsertRun(ctx context.Context, run model.Run, events []model.Event) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (platform, generated_at, seed, target_total, target_easy, target_medium, target_hard, event_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Platform,
		run.GeneratedAt.Format(time.RFC3339Nano),
		run.Seed,
		run.TargetTotal,
		run.Targets.Easy,
		run.Targets.Medium,
		run.Targets.Hard,
		len(events),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(events) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO events (id, run_id, platform, problem_title, problem_url, tags, difficulty, solved_date, language, time_spent, is_accepted, attempt_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ev := range events {
			var tags string
			tags, err = encodeTags(ev.Tags)
			if err != nil {
				err = fmt.Errorf("failed to encode tags of event %s: %w", ev.ID, err)
				return 0, err
			}
			if _, err = stmt.ExecContext(ctx,
				ev.ID,
				id,
				run.Platform,
				ev.ProblemTitle,
				ev.ProblemURL,
				tags,
				string(ev.Difficulty),
				model.DayKey(ev.SolvedDate),
				ev.Language,
				ev.TimeSpent,
				ev.IsAccepted,
				ev.AttemptCount,
			); err != nil {
				err = fmt.Errorf("failed to insert event %s: %w", ev.ID, err)
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]model.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, platform, generated_at, seed, target_total, target_easy, target_medium, target_hard, event_count
		FROM runs
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var generatedAt string
		if err := rows.Scan(&run.ID, &run.Platform, &generatedAt, &run.Seed, &run.TargetTotal,
			&run.Targets.Easy, &run.Targets.Medium, &run.Targets.Hard, &run.EventCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, generatedAt)
		if err != nil {
			return nil, err
		}
		run.GeneratedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListEvents returns events of the latest run of each platform, filtered by
// stats config and ordered by solve date.
func (s *Store) ListEvents(ctx context.Context, cfg model.StatsConfig) ([]model.Event, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Platform != "" {
		clauses = append(clauses, "e.platform = ?")
		args = append(args, cfg.Platform)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "e.solved_date >= ?")
		args = append(args, model.DayKey(*cfg.Since))
	}
	query := fmt.Sprintf(`WITH latest AS (
		SELECT MAX(id) AS id FROM runs GROUP BY platform
	)
	SELECT e.id, e.platform, e.problem_title, e.problem_url, e.tags, e.difficulty, e.solved_date,
		e.language, e.time_spent, e.is_accepted, e.attempt_count
	FROM events e
	JOIN latest l ON l.id = e.run_id
	WHERE %s
	ORDER BY e.solved_date ASC, e.rowid ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var tags, difficulty, solved string
		if err := rows.Scan(&ev.ID, &ev.Platform, &ev.ProblemTitle, &ev.ProblemURL, &tags, &difficulty, &solved,
			&ev.Language, &ev.TimeSpent, &ev.IsAccepted, &ev.AttemptCount); err != nil {
			return nil, err
		}
		ev.Tags, err = decodeTags(tags)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tags of event %s: %w", ev.ID, err)
		}
		ev.Difficulty = model.Difficulty(difficulty)
		parsed, err := time.ParseInLocation(model.DayLayout, solved, time.Local)
		if err != nil {
			return nil, err
		}
		ev.SolvedDate = parsed
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "[") {
		return strings.Split(raw, legacyTagSeparator), nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
