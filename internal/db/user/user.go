package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, password_hash, role, status, activation_code, reset_code, reset_issued_at,
	created_at, updated_at`

type PgxUserRepository struct {
	db db.Queryer
}

func NewPgxRepository(queryer db.Queryer) *PgxUserRepository {
	if queryer == nil {
		panic(e.NewNilArgumentError("queryer"))
	}
	return &PgxUserRepository{db: queryer}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, password_hash, role, status, activation_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.Role.String(),
		input.Status.String(),
		encodeOptionalString(string(input.ActivationCode.Value), input.ActivationCode.IsPresent),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByResetCode(ctx context.Context, code user.ResetCode) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE reset_code = $1`, string(code))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Read(ctx context.Context, options user.ReadOptions) (users []user.User, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM "user" ORDER BY id LIMIT $1 OFFSET $2`,
		encodeOptionalLimit(options.Limit),
		int64(options.Offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users = make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Count(ctx context.Context) (uint, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxUserRepository) Activate(
	ctx context.Context,
	code user.ActivationCode,
	at time.Time,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		SET status = $1, activation_code = NULL, updated_at = $2
		WHERE activation_code = $3 AND status = $4
		RETURNING `+userColumns,
		user.StatusConfirmed.String(),
		at,
		string(code),
		user.StatusUnconfirmed.String(),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidActivationCode
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetResetCode(
	ctx context.Context,
	id user.ID,
	code user.ResetCode,
	at time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_code = $2, reset_issued_at = $3, updated_at = $3 WHERE id = $1`,
		int64(id),
		string(code),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ConsumeResetCode(
	ctx context.Context,
	code user.ResetCode,
	password user.PasswordHash,
	at time.Time,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		SET reset_code = NULL, reset_issued_at = NULL, password_hash = $2, updated_at = $3
		WHERE reset_code = $1
		RETURNING `+userColumns,
		string(code),
		string(password),
		at,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidResetCode
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPassword(
	ctx context.Context,
	id user.ID,
	password user.PasswordHash,
	at time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		int64(id),
		string(password),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		SET
			name = CASE WHEN $2::bool THEN $3 ELSE name END,
			email = CASE WHEN $4::bool THEN $5 ELSE email END,
			password_hash = CASE WHEN $6::bool THEN $7 ELSE password_hash END,
			role = CASE WHEN $8::bool THEN $9 ELSE role END,
			status = CASE WHEN $10::bool THEN $11 ELSE status END,
			updated_at = $12
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.ID),
		input.DoNameUpdate,
		input.Name,
		input.DoEmailUpdate,
		string(input.Email),
		input.DoPasswordHashUpdate,
		string(input.PasswordHash),
		input.DoRoleUpdate,
		input.Role.String(),
		input.DoStatusUpdate,
		input.Status.String(),
		input.UpdatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id             int64
		name           string
		email          string
		passwordHash   string
		role           string
		status         string
		activationCode sql.NullString
		resetCode      sql.NullString
		resetIssuedAt  sql.NullTime
		createdAt      time.Time
		updatedAt      time.Time
	)
	err = row.Scan(
		&id, &name, &email, &passwordHash, &role, &status,
		&activationCode, &resetCode, &resetIssuedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return u, err
	}

	decodedRole, err := user.ParseRole(role)
	if err != nil {
		return u, fmt.Errorf("user %d: %w", id, err)
	}
	decodedStatus, err := user.ParseStatus(status)
	if err != nil {
		return u, fmt.Errorf("user %d: %w", id, err)
	}

	return user.User{
		ID:             user.ID(id),
		Name:           name,
		Email:          c.Email(email),
		PasswordHash:   user.PasswordHash(passwordHash),
		Role:           decodedRole,
		Status:         decodedStatus,
		ActivationCode: c.NewOptional(user.ActivationCode(activationCode.String), activationCode.Valid),
		ResetCode:      c.NewOptional(user.ResetCode(resetCode.String), resetCode.Valid),
		ResetIssuedAt:  c.NewOptional(resetIssuedAt.Time, resetIssuedAt.Valid),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func encodeOptionalString(value string, isPresent bool) sql.NullString {
	return sql.NullString{String: value, Valid: isPresent}
}

// A NULL limit means no limit to PostgreSQL.
func encodeOptionalLimit(limit c.Optional[uint]) interface{} {
	if !limit.IsPresent {
		return nil
	}
	return int64(limit.Value)
}
