package forgotpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	ratelimiter "tasktracker/internal/core/domain/rate_limiter"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	resetpassword "tasktracker/internal/core/services/reset_password"
	sendresetcode "tasktracker/internal/core/services/send_reset_code"
	"tasktracker/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Handler serves both halves of the password recovery flow. A request
// carrying only an email asks for a reset code, a request carrying a code
// and a new password completes the reset.
type Handler struct {
	sendResetCode resetIssuer
	resetPassword resetConsumer
	isTestMode    bool
}

type resetIssuer = services.Service[sendresetcode.Input, sendresetcode.Result]
type resetConsumer = services.Service[resetpassword.Input, resetpassword.Result]

func New(
	sendResetCode resetIssuer,
	resetPassword resetConsumer,
	isTestMode bool,
) *Handler {
	if sendResetCode == nil {
		panic(e.NewNilArgumentError("sendResetCode"))
	}
	if resetPassword == nil {
		panic(e.NewNilArgumentError("resetPassword"))
	}
	return &Handler{sendResetCode: sendResetCode, resetPassword: resetPassword, isTestMode: isTestMode}
}

type Input struct {
	Email          string `json:"email"`
	Code           string `json:"code"`
	Password       string `json:"password"`
	RetypePassword string `json:"retypePassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) ValidateForIssue() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (i Input) ValidateForConsume() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Code, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
		validation.Field(&i.RetypePassword, validation.Required, validation.In(i.Password).Error("passwords do not match")),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if input.Code == "" {
		h.issue(rw, r, input)
		return
	}
	h.consume(rw, r, input)
}

func (h *Handler) issue(rw http.ResponseWriter, r *http.Request, input Input) {
	if err := input.ValidateForIssue(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.sendResetCode.Run(
		r.Context(),
		sendresetcode.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderNotFound(rw, "user does not exist")
		case errors.Is(err, user.ErrUserNotConfirmed):
			response.RenderError(rw, "account not activated", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrResendCooldown):
			response.RenderError(rw, "resend cooldown", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-reset-code", string(result.Code))
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}

func (h *Handler) consume(rw http.ResponseWriter, r *http.Request, input Input) {
	if err := input.ValidateForConsume(); err != nil {
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
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrInvalidResetCode):
			response.RenderError(rw, "code invalid", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
