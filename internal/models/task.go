package models

import "time"

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

const (
	TypeCall     = "Call"
	TypeEmail    = "Email"
	TypeMeeting  = "Meeting"
	TypeFollowUp = "Follow-up"
	TypeReminder = "Reminder"
	TypeOther    = "Other"
)

// TaskTypes lists every accepted task type in display order.
var TaskTypes = []string{
	TypeCall,
	TypeEmail,
	TypeMeeting,
	TypeFollowUp,
	TypeReminder,
	TypeOther,
}

type Task struct {
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

func ValidStatus(status string) bool {
	return status == StatusOpen || status == StatusClosed
}

func ValidTaskType(taskType string) bool {
	for _, t := range TaskTypes {
		if t == taskType {
			return true
		}
	}
	return false
}

// MergeTags unions tag sets preserving first-appearance order.
// Comparison is case-sensitive.
func MergeTags(existing, suggested []string) []string {
	merged := make([]string, 0, len(existing)+len(suggested))
	seen := make(map[string]struct{}, len(existing)+len(suggested))
	for _, tag := range existing {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	for _, tag := range suggested {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	return merged
}
