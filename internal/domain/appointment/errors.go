package appointment

import "errors"

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrDuplicateAppointmentID = errors.New("appointment ID already assigned")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrInvalidPriority        = errors.New("invalid appointment priority")
	ErrInvalidDuration        = errors.New("appointment duration must be between 5 and 480 minutes")
)
