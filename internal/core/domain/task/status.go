package task

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "open":
		return StatusOpen, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

var (
	StatusUnknown    = Status{}
	StatusOpen       = Status{v: "open"}
	StatusInProgress = Status{v: "in_progress"}
	StatusCompleted  = Status{v: "completed"}
)
