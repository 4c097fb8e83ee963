package changepassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	changepassword "tasktracker/internal/core/services/change_password"
	resetpassword "tasktracker/internal/core/services/reset_password"
	"tasktracker/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Handler changes the account password. A request carrying a reset code
// completes the recovery flow, otherwise the caller must be authenticated
// and provide the current password.
type Handler struct {
	changePassword services.Service[changepassword.Input, changepassword.Result]
	resetPassword  services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	changePassword services.Service[changepassword.Input, changepassword.Result],
	resetPassword services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if changePassword == nil {
		panic(e.NewNilArgumentError("changePassword"))
	}
	if resetPassword == nil {
		panic(e.NewNilArgumentError("resetPassword"))
	}
	return &Handler{changePassword: changePassword, resetPassword: resetPassword}
}

type Input struct {
	Code            string `json:"code"`
	Password        string `json:"password"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) ValidateForReset() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Code, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (i Input) ValidateForChange() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.CurrentPassword, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if input.Code != "" {
		h.reset(rw, r, input)
		return
	}
	h.change(rw, r, input)
}

func (h *Handler) reset(rw http.ResponseWriter, r *http.Request, input Input) {
	if err := input.ValidateForReset(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.resetPassword.Run(
		r.Context(),
		resetpassword.Input{
			Code:        user.ResetCode(input.Code),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrInvalidResetCode) {
		response.RenderError(rw, "code invalid", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}

func (h *Handler) change(rw http.ResponseWriter, r *http.Request, input Input) {
	if err := input.ValidateForChange(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.changePassword.Run(
		r.Context(),
		changepassword.Input{
			CurrentPassword: user.RawPassword(input.CurrentPassword),
			NewPassword:     user.RawPassword(input.NewPassword),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, "invalid credentials", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}
