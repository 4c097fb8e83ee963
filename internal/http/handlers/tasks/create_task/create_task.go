package createtask

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	service "tasktracker/internal/core/services/create_task"
	"tasktracker/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  int64  `json:"assignee_id"`
}

type Result struct {
	Task response.Task `json:"task"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.AssigneeID, validation.Required),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Title:       input.Title,
			Description: input.Description,
			AssigneeID:  user.ID(input.AssigneeID),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrPermissionDenied):
			response.RenderForbidden(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respTask := response.Task{}
	respTask.FromDomainTask(result.Task)
	response.Render(rw, Result{Task: respTask}, http.StatusCreated)
}
