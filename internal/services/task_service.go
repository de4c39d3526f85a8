package services

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

var taskTimeRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

type taskServiceImpl struct {
	logger    zerolog.Logger
	store     TaskStore
	suggester TagSuggester

	mu    sync.Mutex
	tasks []models.Task
}

func NewTaskService(
	logger zerolog.Logger,
	store TaskStore,
	suggester TagSuggester,
) TaskService {
	return &taskServiceImpl{
		logger:    logger,
		store:     store,
		suggester: suggester,
	}
}

func (s *taskServiceImpl) Load(ctx context.Context) error {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filters views.Filters, sort *views.Sort) ([]models.Task, []views.ActiveFilter, error) {
	s.mu.Lock()
	tasks := s.tasks
	s.mu.Unlock()

	visible := views.Apply(tasks, filters, sort)
	active := views.ActiveFilters(filters)

	s.logger.Debug().
		Int("total", len(tasks)).
		Int("visible", len(visible)).
		Int("active_filters", len(active)).
		Msg("computed task view")
	return visible, active, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	if err := validateTaskInput(input); err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task input")
		return nil, err
	}

	task := models.Task{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		EntityName:    input.EntityName,
		TaskType:      input.TaskType,
		TaskTime:      input.TaskTime,
		ContactPerson: input.ContactPerson,
		PhoneNumber:   input.PhoneNumber,
		Note:          input.Note,
		Status:        models.StatusOpen,
		Tags:          models.MergeTags(nil, input.Tags),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to save tasks")
		return nil, err
	}
	s.tasks = next

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	if err := validateTaskInput(input); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("invalid task input")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	next := snapshot(s.tasks)
	task := &next[i]
	task.EntityName = input.EntityName
	task.TaskType = input.TaskType
	task.TaskTime = input.TaskTime
	task.ContactPerson = input.ContactPerson
	task.PhoneNumber = input.PhoneNumber
	task.Note = input.Note
	task.Tags = models.MergeTags(nil, input.Tags)

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to save tasks")
		return nil, err
	}
	s.tasks = next

	updated := next[i]
	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return &updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	next := make([]models.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to save tasks")
		return err
	}
	s.tasks = next

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) DuplicateTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	copied := s.tasks[i]
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now().UTC()
	copied.Status = models.StatusOpen
	copied.Tags = models.MergeTags(nil, s.tasks[i].Tags)

	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, copied)
	next = append(next, s.tasks...)

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to save tasks")
		return nil, err
	}
	s.tasks = next

	s.logger.Info().
		Str("source_id", id).
		Str("task_id", copied.ID).
		Msg("duplicated task")
	return &copied, nil
}

func (s *taskServiceImpl) SetTaskStatus(ctx context.Context, id, status string) (*models.Task, error) {
	if !models.ValidStatus(status) {
		s.logger.Error().
			Str("status", status).
			Msg("invalid status")
		return nil, ErrInvalidTaskStatus
	}
	return s.changeStatus(ctx, id, func(string) string { return status })
}

func (s *taskServiceImpl) ToggleTaskStatus(ctx context.Context, id string) (*models.Task, error) {
	return s.changeStatus(ctx, id, func(current string) string {
		if current == models.StatusOpen {
			return models.StatusClosed
		}
		return models.StatusOpen
	})
}

func (s *taskServiceImpl) changeStatus(ctx context.Context, id string, next func(current string) string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	updated := snapshot(s.tasks)
	updated[i].Status = next(updated[i].Status)

	if err := s.store.Save(ctx, updated); err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to save tasks")
		return nil, err
	}
	s.tasks = updated

	task := updated[i]
	s.logger.Info().
		Str("task_id", id).
		Str("status", task.Status).
		Msg("changed task status")
	return &task, nil
}

func (s *taskServiceImpl) SuggestTags(ctx context.Context, note string) ([]string, error) {
	if strings.TrimSpace(note) == "" {
		s.logger.Warn().Msg("blank note, skipping suggestion")
		return nil, ErrEmptyNote
	}

	tags, err := s.suggester.Suggest(ctx, note)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to suggest tags")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tags)).
		Msg("suggested tags")
	return tags, nil
}

func indexOf(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func snapshot(tasks []models.Task) []models.Task {
	next := make([]models.Task, len(tasks))
	copy(next, tasks)
	return next
}

// Length bounds count characters, not bytes, so multibyte input is
// measured the same way the form shows it to the user.
func validateTaskInput(input TaskInput) error {
	if input.EntityName == "" {
		return &ValidationError{Field: "entity_name", Rule: "is required"}
	}
	if utf8.RuneCountInString(input.EntityName) > 100 {
		return &ValidationError{Field: "entity_name", Rule: "must be at most 100 characters"}
	}
	if !models.ValidTaskType(input.TaskType) {
		return &ValidationError{Field: "task_type", Rule: "must be a known task type"}
	}
	if !taskTimeRegexp.MatchString(input.TaskTime) {
		return &ValidationError{Field: "task_time", Rule: "must match HH:MM"}
	}
	if input.ContactPerson == "" {
		return &ValidationError{Field: "contact_person", Rule: "is required"}
	}
	if utf8.RuneCountInString(input.ContactPerson) > 100 {
		return &ValidationError{Field: "contact_person", Rule: "must be at most 100 characters"}
	}
	if utf8.RuneCountInString(input.PhoneNumber) > 20 {
		return &ValidationError{Field: "phone_number", Rule: "must be at most 20 characters"}
	}
	if utf8.RuneCountInString(input.Note) > 500 {
		return &ValidationError{Field: "note", Rule: "must be at most 500 characters"}
	}
	return nil
}
