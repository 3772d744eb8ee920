package domain

import (
	"strings"
	"time"
)

// Task is a to-do item owned by a user of the user service.
// UserID is checked against the user service only when the task is created.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	UserID      int64      `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new, not yet persisted Task. The ID is left at zero for
// the store to assign. Returns a ValidationError if a required field is
// missing.
func NewTask(title string, description *string, dueDate *time.Time, userID int64) (*Task, error) {
	now := currentTime()
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     normalizeTime(dueDate),
		Completed:   false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the fields every stored task must satisfy.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrValidation)
	}

	if t.UserID <= 0 {
		return NewValidationError("userId", "is required", ErrInvalidID)
	}

	return nil
}

// TaskUpdate carries a partial update. Only fields whose Optional is set are
// applied. A set nil clears description or dueDate; an empty description
// string is stored as given.
type TaskUpdate struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[*string]    `json:"description"`
	DueDate     Optional[*time.Time] `json:"dueDate"`
	Completed   Optional[bool]       `json:"completed"`
}

// Validate rejects updates that would leave the task invalid. Title may be
// omitted but, when present, must be non-empty.
func (u TaskUpdate) Validate() error {
	if title, ok := u.Title.Get(); ok && strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	return nil
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Description.Set && !u.DueDate.Set && !u.Completed.Set
}

// Apply validates u and copies its set fields onto the task, refreshing
// UpdatedAt. The task is left unchanged when validation fails.
func (t *Task) Apply(u TaskUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if title, ok := u.Title.Get(); ok {
		t.Title = strings.TrimSpace(title)
	}
	if description, ok := u.Description.Get(); ok {
		t.Description = description
	}
	if dueDate, ok := u.DueDate.Get(); ok {
		t.DueDate = normalizeTime(dueDate)
	}
	if completed, ok := u.Completed.Get(); ok {
		t.Completed = completed
	}

	t.Touch()
	return nil
}

// Touch advances UpdatedAt to the current time. The new value is always
// strictly after the previous one so ordering by UpdatedAt stays meaningful
// even on coarse clocks.
func (t *Task) Touch() {
	now := currentTime()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(TimestampPrecision)
	}
	t.UpdatedAt = now
}

// IsDueBetween reports whether the task is incomplete and due within [from, to].
func (t *Task) IsDueBetween(from, to time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return !t.DueDate.Before(from) && !t.DueDate.After(to)
}

// TimestampPrecision is the resolution PostgreSQL keeps for TIMESTAMPTZ.
// Timestamps are truncated to it so the values returned on write match what
// a later read returns.
const TimestampPrecision = time.Microsecond

func currentTime() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}

func normalizeTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	utc := ts.UTC()
	return &utc
}
