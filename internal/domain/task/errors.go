package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrProjectNotFound indicates the parent project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAttachmentNotFound indicates the attachment doesn't exist.
	ErrAttachmentNotFound = errors.New("attachment not found")
	// ErrDueBeforeStart indicates the due date is not after the start date.
	ErrDueBeforeStart = errors.New("due date must be after start date")
	// ErrStartsBeforeProject indicates the task starts before its project.
	ErrStartsBeforeProject = errors.New("start date cannot be before the project start date")
	// ErrDueAfterDeadline indicates the due date exceeds the project deadline.
	ErrDueAfterDeadline = errors.New("due date cannot be after the project deadline")
	// ErrAlreadyAssigned indicates the user is already on the assignee list.
	ErrAlreadyAssigned = errors.New("user already assigned to this task")
	// ErrNotAssigned indicates the user is not on the assignee list.
	ErrNotAssigned = errors.New("user not assigned to this task")
)
