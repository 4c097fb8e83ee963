package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	c "tasktracker/internal/core/domain/common"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeResetCodeGenerator struct {
	Code ResetCode
}

func NewFakeResetCodeGenerator(code string) *FakeResetCodeGenerator {
	return &FakeResetCodeGenerator{Code: ResetCode(code)}
}

func (g *FakeResetCodeGenerator) GenerateResetCode() ResetCode {
	return g.Code
}

type FakeResetCodeSender struct {
	Sent        []ResetCode
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetCodeSender() *FakeResetCodeSender {
	return &FakeResetCodeSender{}
}

func (s *FakeResetCodeSender) SendResetCode(ctx context.Context, user User, code ResetCode) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset code to user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, code)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakeResetCodeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeActivationCodeGenerator struct {
	Code ActivationCode
}

func NewFakeActivationCodeGenerator(code string) *FakeActivationCodeGenerator {
	return &FakeActivationCodeGenerator{Code: ActivationCode(code)}
}

func (g *FakeActivationCodeGenerator) GenerateActivationCode() ActivationCode {
	return g.Code
}

type FakeActivationCodeSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActivationCodeSender() *FakeActivationCodeSender {
	return &FakeActivationCodeSender{}
}

func (s *FakeActivationCodeSender) SendActivationCode(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send activation code to user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}

func (s *FakeActivationCodeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:             maxID + 1,
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   input.PasswordHash,
		Role:           input.Role,
		Status:         input.Status,
		ActivationCode: input.ActivationCode,
		CreatedAt:      input.CreatedAt,
		UpdatedAt:      input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByResetCode(ctx context.Context, code ResetCode) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ResetCode.IsPresent && u.ResetCode.Value == code {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Read(ctx context.Context, options ReadOptions) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, 0, len(r.Users))
	for ix, u := range r.Users {
		if uint(ix) < options.Offset {
			continue
		}
		if options.Limit.IsPresent && uint(len(users)) >= options.Limit.Value {
			break
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *FakeUserRepository) Count(ctx context.Context) (uint, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not count users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return uint(len(r.Users)), nil
}

func (r *FakeUserRepository) Activate(ctx context.Context, code ActivationCode, at time.Time) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.IsConfirmed() && u.ActivationCode.IsPresent && u.ActivationCode.Value == code {
			r.Users[ix].Status = StatusConfirmed
			r.Users[ix].ActivationCode = c.NewOptional(ActivationCode(""), false)
			r.Users[ix].UpdatedAt = at
			return r.Users[ix], nil
		}
	}
	return u, ErrInvalidActivationCode
}

func (r *FakeUserRepository) SetResetCode(ctx context.Context, id ID, code ResetCode, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset code for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].ResetCode = c.NewOptional(code, true)
			r.Users[ix].ResetIssuedAt = c.NewOptional(at, true)
			r.Users[ix].UpdatedAt = at
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ConsumeResetCode(
	ctx context.Context,
	code ResetCode,
	password PasswordHash,
	at time.Time,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ResetCode.IsPresent && u.ResetCode.Value == code {
			r.Users[ix].ResetCode = c.NewOptional(ResetCode(""), false)
			r.Users[ix].ResetIssuedAt = c.NewOptional(time.Time{}, false)
			r.Users[ix].PasswordHash = password
			r.Users[ix].UpdatedAt = at
			return r.Users[ix], nil
		}
	}
	return u, ErrInvalidResetCode
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			r.Users[ix].UpdatedAt = at
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.ID {
			if input.DoNameUpdate {
				r.Users[ix].Name = input.Name
			}
			if input.DoEmailUpdate {
				r.Users[ix].Email = input.Email
			}
			if input.DoPasswordHashUpdate {
				r.Users[ix].PasswordHash = input.PasswordHash
			}
			if input.DoRoleUpdate {
				r.Users[ix].Role = input.Role
			}
			if input.DoStatusUpdate {
				r.Users[ix].Status = input.Status
			}
			r.Users[ix].UpdatedAt = input.UpdatedAt
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}
