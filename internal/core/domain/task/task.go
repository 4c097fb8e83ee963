package task

import (
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/user"
	"time"
)

type ID int64

type Task struct {
	ID          ID
	Title       string
	Description string
	Status      Status
	AssigneeID  user.ID
	Comments    []Comment
	CreatedBy   user.ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return e.NewInvalidStateError("task title must be set")
	}
	if t.Status == StatusUnknown {
		return e.NewInvalidStateError("task status must be set")
	}
	return nil
}

type Comment struct {
	AuthorID  user.ID   `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
