package task

import "context"

type EventType struct {
	v string
}

func (t EventType) String() string {
	return t.v
}

var (
	EventTypeCreated = EventType{v: "task_created"}
	EventTypeUpdated = EventType{v: "task_updated"}
	EventTypeDeleted = EventType{v: "task_deleted"}
)

type Event struct {
	Type   EventType
	TaskID ID
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
