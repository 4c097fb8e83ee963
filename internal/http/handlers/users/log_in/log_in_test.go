package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"tasktracker/internal/core/domain/user"
	service "tasktracker/internal/core/services/log_in"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Token = user.SessionToken("test-session-token")
	return result, nil
}

func TestLogInHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test", "password": "test-password"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid email",
			body:           `{"email": "aaa", "password": "test-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing password",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid credentials",
			body:           `{"email": "test@test.test", "password": "test-password"}`,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "account not activated",
			body:           `{"email": "test@test.test", "password": "test-password"}`,
			serviceErr:     user.ErrUserNotConfirmed,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			req, err := http.NewRequest("POST", "/login", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert := assert.New(t)
			assert.Equal(testcase.expectedStatus, recorder.Code)
			if testcase.expectedStatus == http.StatusOK {
				var body struct {
					Success bool `json:"success"`
					Data    struct {
						Token string `json:"token"`
					} `json:"data"`
				}
				err := json.Unmarshal(recorder.Body.Bytes(), &body)
				assert.Nil(err)
				assert.True(body.Success)
				assert.Equal("test-session-token", body.Data.Token)
			}
		})
	}
}
