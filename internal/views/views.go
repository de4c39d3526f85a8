package views

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// FilterAll is the unset sentinel for the task type and status filters.
const FilterAll = "all"

// Column keys name table columns and double as active-filter field
// keys. Only the subset accepted by ValidColumn is sortable.
const (
	ColumnCreatedAt     = "date_created"
	ColumnEntityName    = "entity_name"
	ColumnTaskType      = "task_type"
	ColumnContactPerson = "contact_person"
	ColumnStatus        = "status"
)

const (
	Ascending  = "ascending"
	Descending = "descending"
)

// Filters holds the current filter state. A nil date, an empty string
// or FilterAll means the corresponding filter is not applied.
//
// Date is a UTC calendar date: tasks match when their creation day,
// evaluated in UTC, equals it. Creation times are stamped in UTC so
// both sides of the comparison share one location.
type Filters struct {
	Date          *time.Time
	EntityName    string
	TaskType      string
	ContactPerson string
	Status        string
}

type Sort struct {
	Column    string
	Direction string
}

// ActiveFilter describes one applied filter so it can be displayed
// as a removable chip and cleared individually by its field key.
type ActiveFilter struct {
	Field string `json:"field"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ValidColumn reports whether column is sortable.
func ValidColumn(column string) bool {
	switch column {
	case ColumnCreatedAt, ColumnEntityName, ColumnTaskType, ColumnStatus:
		return true
	}
	return false
}

// Apply computes the visible task list from the full collection and the
// current filter and sort state. It never mutates the input collection:
// sorting operates on a copy. A nil sort keeps the source order.
func Apply(tasks []models.Task, filters Filters, sortCfg *Sort) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if matches(&task, filters) {
			visible = append(visible, task)
		}
	}

	if sortCfg == nil {
		return visible
	}

	col := collate.New(language.Und)
	sort.SliceStable(visible, func(i, j int) bool {
		cmp := compare(col, &visible[i], &visible[j], sortCfg.Column)
		if sortCfg.Direction == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
	return visible
}

func matches(task *models.Task, filters Filters) bool {
	if filters.Date != nil && !sameUTCDay(task.CreatedAt, *filters.Date) {
		return false
	}
	if filters.EntityName != "" &&
		!containsFold(task.EntityName, filters.EntityName) {
		return false
	}
	if filters.TaskType != "" && filters.TaskType != FilterAll &&
		task.TaskType != filters.TaskType {
		return false
	}
	if filters.ContactPerson != "" &&
		!containsFold(task.ContactPerson, filters.ContactPerson) {
		return false
	}
	if filters.Status != "" && filters.Status != FilterAll &&
		task.Status != filters.Status {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func compare(col *collate.Collator, a, b *models.Task, column string) int {
	switch column {
	case ColumnCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case ColumnEntityName:
		return col.CompareString(a.EntityName, b.EntityName)
	case ColumnTaskType:
		return col.CompareString(a.TaskType, b.TaskType)
	case ColumnStatus:
		return col.CompareString(a.Status, b.Status)
	default:
		return 0
	}
}

// ActiveFilters returns descriptors for every applied filter in field
// declaration order: date, entity name, task type, contact person, status.
func ActiveFilters(filters Filters) []ActiveFilter {
	var active []ActiveFilter
	if filters.Date != nil {
		active = append(active, ActiveFilter{
			Field: "date",
			Name:  "Date",
			Value: filters.Date.Format("January 2, 2006"),
		})
	}
	if filters.EntityName != "" {
		active = append(active, ActiveFilter{
			Field: ColumnEntityName,
			Name:  "Entity",
			Value: filters.EntityName,
		})
	}
	if filters.TaskType != "" && filters.TaskType != FilterAll {
		active = append(active, ActiveFilter{
			Field: ColumnTaskType,
			Name:  "Type",
			Value: filters.TaskType,
		})
	}
	if filters.ContactPerson != "" {
		active = append(active, ActiveFilter{
			Field: ColumnContactPerson,
			Name:  "Contact",
			Value: filters.ContactPerson,
		})
	}
	if filters.Status != "" && filters.Status != FilterAll {
		active = append(active, ActiveFilter{
			Field: ColumnStatus,
			Name:  "Status",
			Value: cases.Title(language.Und).String(filters.Status),
		})
	}
	return active
}
