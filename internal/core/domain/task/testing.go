package task

import (
	"context"
	"fmt"
	"sync"
)

type FakeTaskRepository struct {
	Tasks       []Task
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{Tasks: make([]Task, 0, 10)}
}

func (r *FakeTaskRepository) Create(ctx context.Context, input CreateInput) (t Task, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create task %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, t := range r.Tasks {
		maxID = t.ID
	}
	t = Task{
		ID:          maxID + 1,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		AssigneeID:  input.AssigneeID,
		Comments:    make([]Comment, 0),
		CreatedBy:   input.CreatedBy,
		CreatedAt:   input.CreatedAt,
		UpdatedAt:   input.CreatedAt,
	}
	r.Tasks = append(r.Tasks, t)
	return t, nil
}

func (r *FakeTaskRepository) GetByID(ctx context.Context, id ID) (t Task, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return t, ErrTaskDoesNotExist
}

func (r *FakeTaskRepository) Read(ctx context.Context, options ReadOptions) ([]Task, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read tasks")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	tasks := make([]Task, 0, len(r.Tasks))
	skipped := uint(0)
	for _, t := range r.Tasks {
		if options.AssigneeIDEquals.IsPresent && t.AssigneeID != options.AssigneeIDEquals.Value {
			continue
		}
		if options.StatusEquals.IsPresent && t.Status != options.StatusEquals.Value {
			continue
		}
		if skipped < options.Offset {
			skipped++
			continue
		}
		if options.Limit.IsPresent && uint(len(tasks)) >= options.Limit.Value {
			break
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *FakeTaskRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not count tasks")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	count := uint(0)
	for _, t := range r.Tasks {
		if options.AssigneeIDEquals.IsPresent && t.AssigneeID != options.AssigneeIDEquals.Value {
			continue
		}
		if options.StatusEquals.IsPresent && t.Status != options.StatusEquals.Value {
			continue
		}
		count++
	}
	return count, nil
}

func (r *FakeTaskRepository) Update(ctx context.Context, input UpdateInput) (t Task, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not update task %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tasks {
		if t.ID == input.ID {
			if input.DoTitleUpdate {
				r.Tasks[ix].Title = input.Title
			}
			if input.DoDescriptionUpdate {
				r.Tasks[ix].Description = input.Description
			}
			if input.DoStatusUpdate {
				r.Tasks[ix].Status = input.Status
			}
			if input.DoAssigneeIDUpdate {
				r.Tasks[ix].AssigneeID = input.AssigneeID
			}
			r.Tasks[ix].UpdatedAt = input.UpdatedAt
			return r.Tasks[ix], nil
		}
	}
	return t, ErrTaskDoesNotExist
}

func (r *FakeTaskRepository) AddComment(ctx context.Context, input AddCommentInput) (t Task, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not add comment to task %d", input.TaskID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tasks {
		if t.ID == input.TaskID {
			r.Tasks[ix].Comments = append(r.Tasks[ix].Comments, input.Comment)
			r.Tasks[ix].UpdatedAt = input.Comment.CreatedAt
			return r.Tasks[ix], nil
		}
	}
	return t, ErrTaskDoesNotExist
}

func (r *FakeTaskRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tasks {
		if t.ID == id {
			r.Tasks = append(r.Tasks[:ix], r.Tasks[ix+1:]...)
			return nil
		}
	}
	return ErrTaskDoesNotExist
}

type FakeEventPublisher struct {
	Published []Event
	lock      sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{Published: make([]Event, 0)}
}

func (p *FakeEventPublisher) Publish(ctx context.Context, event Event) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
}

func (p *FakeEventPublisher) PublishedCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.Published)
}
