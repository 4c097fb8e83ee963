package response

import (
	"tasktracker/internal/core/domain/task"

	"github.com/golang-module/carbon/v2"
)

type Comment struct {
	AuthorID  int64  `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssigneeID  int64     `json:"assignee_id"`
	Comments    []Comment `json:"comments"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func (t *Task) FromDomainTask(dt task.Task) {
	t.ID = int64(dt.ID)
	t.Title = dt.Title
	t.Description = dt.Description
	t.Status = dt.Status.String()
	t.AssigneeID = int64(dt.AssigneeID)
	t.Comments = make([]Comment, 0, len(dt.Comments))
	for _, comment := range dt.Comments {
		t.Comments = append(t.Comments, Comment{
			AuthorID:  int64(comment.AuthorID),
			Body:      comment.Body,
			CreatedAt: carbon.CreateFromStdTime(comment.CreatedAt).ToDateTimeString(),
		})
	}
	t.CreatedBy = int64(dt.CreatedBy)
	t.CreatedAt = carbon.CreateFromStdTime(dt.CreatedAt).ToDateTimeString()
	t.UpdatedAt = carbon.CreateFromStdTime(dt.UpdatedAt).ToDateTimeString()
}
