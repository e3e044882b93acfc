package doctor

import "errors"

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDuplicateDoctorID = errors.New("doctor ID already assigned")
	ErrInvalidWeekday    = errors.New("invalid schedule day")
)
