package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrEmptyNote         = errors.New("note is empty")
)

// ValidationError reports the offending field and the violated rule.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

type TaskService interface {
	// Load reads the persisted collection into memory. It is called
	// once at startup; every mutation persists the new collection back.
	Load(ctx context.Context) error

	// ListTasks computes the visible task list for the given filter and
	// sort state together with the active filter descriptors. It never
	// mutates the underlying collection.
	ListTasks(ctx context.Context, filters views.Filters, sort *views.Sort) ([]models.Task, []views.ActiveFilter, error)

	// CreateTask validates the input and prepends a new task with a
	// fresh ID and open status.
	CreateTask(ctx context.Context, input TaskInput) (*models.Task, error)

	// UpdateTask validates the input and replaces the mutable fields of
	// the matching task, preserving its ID, status and creation time.
	//
	// It returns ErrTaskNotFound if no task has the given ID.
	UpdateTask(ctx context.Context, id string, input TaskInput) (*models.Task, error)

	// DeleteTask removes the matching task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id string) error

	// DuplicateTask prepends a copy of the matching task with a fresh
	// ID, the creation time reset to now and the status reset to open.
	//
	// It returns ErrTaskNotFound if no task has the given ID.
	DuplicateTask(ctx context.Context, id string) (*models.Task, error)

	// SetTaskStatus sets the matching task's status to an explicit
	// value, which must be one of the closed status set.
	SetTaskStatus(ctx context.Context, id, status string) (*models.Task, error)

	// ToggleTaskStatus flips the matching task's status between open
	// and closed.
	ToggleTaskStatus(ctx context.Context, id string) (*models.Task, error)

	// SuggestTags asks the tag suggestion service for tags describing
	// the given note. A blank note fails with ErrEmptyNote before the
	// service is ever invoked. Existing task state is never touched.
	SuggestTags(ctx context.Context, note string) ([]string, error)
}

// TaskStore is the persistence collaborator. Load returns an empty
// collection on first run; Save replaces the stored collection.
type TaskStore interface {
	Load(ctx context.Context) ([]models.Task, error)
	Save(ctx context.Context, tasks []models.Task) error
}

// TagSuggester is the AI collaborator: note text in, tags out.
type TagSuggester interface {
	Suggest(ctx context.Context, description string) ([]string, error)
}

type TaskInput struct {
	EntityName    string
	TaskType      string
	TaskTime      string
	ContactPerson string
	PhoneNumber   string
	Note          string
	Tags          []string
}
