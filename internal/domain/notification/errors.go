package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidType          = errors.New("invalid notification type")
	ErrInvalidPriority      = errors.New("invalid notification priority")
	ErrTitleTooLong         = errors.New("notification title exceeds 100 characters")
	ErrMessageTooLong       = errors.New("notification message exceeds 500 characters")
)
