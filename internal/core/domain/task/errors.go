package task

import "errors"

var ErrTaskDoesNotExist = errors.New("task does not exist")
