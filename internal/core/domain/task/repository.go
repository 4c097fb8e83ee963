package task

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	"tasktracker/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	Title       string
	Description string
	Status      Status
	AssigneeID  user.ID
	CreatedBy   user.ID
	CreatedAt   time.Time
}

type ReadOptions struct {
	AssigneeIDEquals c.Optional[user.ID]
	StatusEquals     c.Optional[Status]
	OrderBy          OrderBy
	Limit            c.Optional[uint]
	Offset           uint
}

type UpdateInput struct {
	ID                  ID
	DoTitleUpdate       bool
	Title               string
	DoDescriptionUpdate bool
	Description         string
	DoStatusUpdate      bool
	Status              Status
	DoAssigneeIDUpdate  bool
	AssigneeID          user.ID
	UpdatedAt           time.Time
}

type AddCommentInput struct {
	TaskID  ID
	Comment Comment
}

type TaskRepository interface {
	Create(ctx context.Context, input CreateInput) (Task, error)
	GetByID(ctx context.Context, id ID) (Task, error)
	Read(ctx context.Context, options ReadOptions) ([]Task, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Task, error)
	AddComment(ctx context.Context, input AddCommentInput) (Task, error)
	Delete(ctx context.Context, id ID) error
}
