package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const taskColumns = `id, title, description, status, assignee_id, comments, created_by, created_at, updated_at`

type PgxTaskRepository struct {
	db db.Queryer
}

func NewPgxRepository(queryer db.Queryer) *PgxTaskRepository {
	if queryer == nil {
		panic(e.NewNilArgumentError("queryer"))
	}
	return &PgxTaskRepository{db: queryer}
}

func (r *PgxTaskRepository) Create(ctx context.Context, input task.CreateInput) (t task.Task, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO task (title, description, status, assignee_id, comments, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '[]'::jsonb, $5, $6, $6)
		RETURNING `+taskColumns,
		input.Title,
		input.Description,
		input.Status.String(),
		int64(input.AssigneeID),
		int64(input.CreatedBy),
		input.CreatedAt,
	)
	return scanTask(row)
}

func (r *PgxTaskRepository) GetByID(ctx context.Context, id task.ID) (t task.Task, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM task WHERE id = $1`, int64(id))
	t, err = scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	return t, err
}

func (r *PgxTaskRepository) Read(ctx context.Context, options task.ReadOptions) (tasks []task.Task, err error) {
	order := "id"
	if options.OrderBy == task.OrderByIDDesc {
		order = "id DESC"
	}
	rows, err := r.db.Query(
		ctx,
		`SELECT `+taskColumns+` FROM task
		WHERE ($1::bigint IS NULL OR assignee_id = $1)
			AND ($2::text IS NULL OR status = $2)
		ORDER BY `+order+` LIMIT $3 OFFSET $4`,
		encodeOptionalID(options.AssigneeIDEquals.IsPresent, int64(options.AssigneeIDEquals.Value)),
		encodeOptionalStatus(options.StatusEquals),
		encodeOptionalLimit(options.Limit.IsPresent, int64(options.Limit.Value)),
		int64(options.Offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks = make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgxTaskRepository) Count(ctx context.Context, options task.ReadOptions) (uint, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM task
		WHERE ($1::bigint IS NULL OR assignee_id = $1)
			AND ($2::text IS NULL OR status = $2)`,
		encodeOptionalID(options.AssigneeIDEquals.IsPresent, int64(options.AssigneeIDEquals.Value)),
		encodeOptionalStatus(options.StatusEquals),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxTaskRepository) Update(ctx context.Context, input task.UpdateInput) (t task.Task, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE task
		SET
			title = CASE WHEN $2::bool THEN $3 ELSE title END,
			description = CASE WHEN $4::bool THEN $5 ELSE description END,
			status = CASE WHEN $6::bool THEN $7 ELSE status END,
			assignee_id = CASE WHEN $8::bool THEN $9 ELSE assignee_id END,
			updated_at = $10
		WHERE id = $1
		RETURNING `+taskColumns,
		int64(input.ID),
		input.DoTitleUpdate,
		input.Title,
		input.DoDescriptionUpdate,
		input.Description,
		input.DoStatusUpdate,
		input.Status.String(),
		input.DoAssigneeIDUpdate,
		int64(input.AssigneeID),
		input.UpdatedAt,
	)
	t, err = scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	return t, err
}

func (r *PgxTaskRepository) AddComment(ctx context.Context, input task.AddCommentInput) (t task.Task, err error) {
	commentBytes, err := json.Marshal(input.Comment)
	if err != nil {
		return t, err
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE task
		SET comments = comments || $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING `+taskColumns,
		int64(input.TaskID),
		string(commentBytes),
		input.Comment.CreatedAt,
	)
	t, err = scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	return t, err
}

func (r *PgxTaskRepository) Delete(ctx context.Context, id task.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM task WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskDoesNotExist
	}
	return nil
}

func scanTask(row pgx.Row) (t task.Task, err error) {
	var (
		id          int64
		title       string
		description string
		status      string
		assigneeID  int64
		comments    pgtype.JSONB
		createdBy   int64
		createdAt   time.Time
		updatedAt   time.Time
	)
	err = row.Scan(
		&id, &title, &description, &status, &assigneeID, &comments, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return t, err
	}

	decodedStatus, err := task.ParseStatus(status)
	if err != nil {
		return t, fmt.Errorf("task %d: %w", id, err)
	}
	decodedComments := make([]task.Comment, 0)
	if comments.Status == pgtype.Present {
		if err := json.Unmarshal(comments.Bytes, &decodedComments); err != nil {
			return t, fmt.Errorf("task %d comments: %w", id, err)
		}
	}

	return task.Task{
		ID:          task.ID(id),
		Title:       title,
		Description: description,
		Status:      decodedStatus,
		AssigneeID:  user.ID(assigneeID),
		Comments:    decodedComments,
		CreatedBy:   user.ID(createdBy),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func encodeOptionalID(isPresent bool, value int64) interface{} {
	if !isPresent {
		return nil
	}
	return value
}

func encodeOptionalStatus(status c.Optional[task.Status]) interface{} {
	if !status.IsPresent {
		return nil
	}
	return status.Value.String()
}

func encodeOptionalLimit(isPresent bool, value int64) interface{} {
	if !isPresent {
		return nil
	}
	return value
}
