package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

type getTaskResponse struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"date_created"`
	EntityName    string    `json:"entity_name"`
	TaskType      string    `json:"task_type"`
	TaskTime      string    `json:"task_time"`
	ContactPerson string    `json:"contact_person"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Note          string    `json:"note,omitempty"`
	Status        string    `json:"status"`
	Tags          []string  `json:"tags"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return getTaskResponse{
		ID:            task.ID,
		CreatedAt:     task.CreatedAt,
		EntityName:    task.EntityName,
		TaskType:      task.TaskType,
		TaskTime:      task.TaskTime,
		ContactPerson: task.ContactPerson,
		PhoneNumber:   task.PhoneNumber,
		Note:          task.Note,
		Status:        task.Status,
		Tags:          tags,
	}
}

type listTasksResponse struct {
	Tasks         []getTaskResponse    `json:"tasks"`
	ActiveFilters []views.ActiveFilter `json:"active_filters"`
}

const filterDateLayout = "2006-01-02"

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	filters := views.Filters{
		EntityName:    c.Query("entity_name"),
		TaskType:      c.DefaultQuery("task_type", views.FilterAll),
		ContactPerson: c.Query("contact_person"),
		Status:        c.DefaultQuery("status", views.FilterAll),
	}

	if rawDate := c.Query("date"); rawDate != "" {
		date, err := time.Parse(filterDateLayout, rawDate)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("date", rawDate).
				Msg("failed to parse date filter")
			abort(c, newBadRequestError("date must match YYYY-MM-DD"))
			return
		}
		filters.Date = &date
	}

	var sort *views.Sort
	if column := c.Query("sort_by"); column != "" {
		if !views.ValidColumn(column) {
			h.logger.Error().
				Str("sort_by", column).
				Msg("unknown sort column")
			abort(c, newBadRequestError("unknown sort column"))
			return
		}

		direction := c.DefaultQuery("sort_dir", views.Ascending)
		if direction != views.Ascending && direction != views.Descending {
			h.logger.Error().
				Str("sort_dir", direction).
				Msg("unknown sort direction")
			abort(c, newBadRequestError("unknown sort direction"))
			return
		}
		sort = &views.Sort{Column: column, Direction: direction}
	}

	tasks, active, err := h.tasks.ListTasks(c, filters, sort)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := listTasksResponse{
		Tasks:         make([]getTaskResponse, len(tasks)),
		ActiveFilters: active,
	}
	if response.ActiveFilters == nil {
		response.ActiveFilters = []views.ActiveFilter{}
	}
	for i, task := range tasks {
		response.Tasks[i] = newGetTaskResponse(&task)
	}

	c.JSON(http.StatusOK, response)
}

// taskRequest carries the form fields of a create or edit submission.
// Field rules are enforced by the service so validation failures come
// back with the offending field attached.
type taskRequest struct {
	EntityName    string   `json:"entity_name"`
	TaskType      string   `json:"task_type"`
	TaskTime      string   `json:"task_time"`
	ContactPerson string   `json:"contact_person"`
	PhoneNumber   string   `json:"phone_number"`
	Note          string   `json:"note"`
	Tags          []string `json:"tags"`
}

func (r taskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		EntityName:    r.EntityName,
		TaskType:      r.TaskType,
		TaskTime:      r.TaskTime,
		ContactPerson: r.ContactPerson,
		PhoneNumber:   r.PhoneNumber,
		Note:          r.Note,
		Tags:          r.Tags,
	}
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, req.toInput())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, taskID, req.toInput())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abortTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDuplicateTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	task, err := h.tasks.DuplicateTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to duplicate task")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

// HandleChangeTaskStatus sets the status to the explicit query value
// when one is provided and toggles between open and closed otherwise.
func (h *handlerImpl) HandleChangeTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	var (
		task *models.Task
		err  error
	)
	if status := c.Query("status"); status != "" {
		task, err = h.tasks.SetTaskStatus(c, taskID, status)
	} else {
		task, err = h.tasks.ToggleTaskStatus(c, taskID)
	}
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to change task status")
		abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}
