package taskevents

import (
	"context"
	"encoding/json"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"

	"github.com/r3labs/sse/v2"
)

const StreamID = "tasks"

// SSEPublisher pushes task lifecycle events to connected browsers.
// Publishing is best effort, a failed push never affects the request that
// triggered the event.
type SSEPublisher struct {
	log       logging.Logger
	sseServer *sse.Server
}

func NewSSEPublisher(log logging.Logger, sseServer *sse.Server) *SSEPublisher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	sseServer.CreateStream(StreamID)
	return &SSEPublisher{log: log, sseServer: sseServer}
}

func (p *SSEPublisher) Publish(ctx context.Context, event task.Event) {
	data, err := json.Marshal(eventPayload{
		Type:   event.Type.String(),
		TaskID: int64(event.TaskID),
	})
	if err != nil {
		p.log.Error(ctx, "Could not marshal task event.", logging.Entry("err", err))
		return
	}
	p.sseServer.Publish(StreamID, &sse.Event{
		Event: []byte(event.Type.String()),
		Data:  data,
	})
}

type eventPayload struct {
	Type   string `json:"type"`
	TaskID int64  `json:"task_id"`
}
