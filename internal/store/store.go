package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// Store persists the task collection in a local SQLite database.
// Load and Save operate on the whole collection so a round trip
// preserves every field and the collection order.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    position       INTEGER NOT NULL,
    id             TEXT PRIMARY KEY,
    date_created   TIMESTAMP NOT NULL,
    entity_name    TEXT NOT NULL,
    task_type      TEXT NOT NULL,
    task_time      TEXT NOT NULL,
    contact_person TEXT NOT NULL,
    phone_number   TEXT NOT NULL DEFAULT '',
    note           TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL,
    tags           TEXT NOT NULL DEFAULT '[]'
);
`

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load returns the stored task collection in its saved order.
// A fresh database yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]models.Task, error) {
	const selectTasksQuery = `
SELECT id, date_created, entity_name, task_type, task_time,
       contact_person, phone_number, note, status, tags
FROM tasks
ORDER BY position
`
	rows, err := s.db.QueryContext(ctx, selectTasksQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var (
			task      models.Task
			createdAt time.Time
			tagsJSON  string
		)
		err = rows.Scan(
			&task.ID,
			&createdAt,
			&task.EntityName,
			&task.TaskType,
			&task.TaskTime,
			&task.ContactPerson,
			&task.PhoneNumber,
			&task.Note,
			&task.Status,
			&tagsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.CreatedAt = createdAt
		if err = json.Unmarshal([]byte(tagsJSON), &task.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

// Save replaces the stored collection with the given one atomically.
func (s *Store) Save(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	const insertTaskQuery = `
INSERT INTO tasks (position, id, date_created, entity_name, task_type,
                   task_time, contact_person, phone_number, note, status, tags)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	stmt, err := tx.PrepareContext(ctx, insertTaskQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		tags := task.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}

		_, err = stmt.ExecContext(
			ctx,
			i,
			task.ID,
			task.CreatedAt,
			task.EntityName,
			task.TaskType,
			task.TaskTime,
			task.ContactPerson,
			task.PhoneNumber,
			task.Note,
			task.Status,
			string(tagsJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
