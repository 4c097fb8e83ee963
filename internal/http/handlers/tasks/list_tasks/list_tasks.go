package listtasks

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	service "tasktracker/internal/core/services/list_tasks"
	"tasktracker/internal/http/handlers/response"
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

type Result struct {
	Tasks      []response.Task `json:"tasks"`
	TotalCount uint            `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawStatus := r.URL.Query().Get("status")
	status, err := parseStatus(rawStatus)
	if err != nil {
		response.RenderError(rw, "invalid status query parameter", http.StatusBadRequest)
		return
	}

	rawOrderBy := r.URL.Query().Get("order_by")
	orderBy, err := parseOrderBy(rawOrderBy)
	if err != nil {
		response.RenderError(rw, "invalid order_by query parameter", http.StatusBadRequest)
		return
	}

	rawLimit := r.URL.Query().Get("limit")
	limit, err := parseLimit(rawLimit)
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	rawOffset := r.URL.Query().Get("offset")
	offset, err := parseOffset(rawOffset)
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		StatusEquals: status,
		OrderBy:      orderBy,
		Limit:        limit,
		Offset:       offset,
	}
	result, err := h.service.Run(r.Context(), input)
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

	respTasks := make([]response.Task, 0, len(result.Tasks))
	for _, domainTask := range result.Tasks {
		respTask := response.Task{}
		respTask.FromDomainTask(domainTask)
		respTasks = append(respTasks, respTask)
	}
	response.Render(rw, Result{Tasks: respTasks, TotalCount: result.TotalCount}, http.StatusOK)
}

func parseStatus(raw string) (result c.Optional[task.Status], err error) {
	if raw == "" {
		return result, nil
	}
	status, err := task.ParseStatus(raw)
	if err != nil {
		return result, err
	}
	return c.NewOptional(status, true), nil
}

func parseOrderBy(raw string) (orderBy task.OrderBy, err error) {
	if raw == "" {
		return orderBy, nil
	}
	orderBy, err = task.ParseOrderBy(raw)
	return orderBy, err
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	l, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return limit, err
	}
	if l > service.DEFAULT_LIMIT {
		return limit, fmt.Errorf("limit must be less than or equal to %v", service.DEFAULT_LIMIT)
	}
	limit.IsPresent = true
	limit.Value = uint(l)
	return limit, nil
}

func parseOffset(raw string) (offset uint, err error) {
	if raw == "" {
		return offset, nil
	}
	o, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return offset, err
	}
	return uint(o), nil
}
