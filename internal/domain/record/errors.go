package record

import "errors"

var (
	ErrRecordNotFound     = errors.New("medical record not found")
	ErrDuplicateRecordID  = errors.New("record ID already assigned")
	ErrInvalidVisitType   = errors.New("invalid visit type")
	ErrPatientRequired    = errors.New("patient reference is required")
	ErrDoctorRequired     = errors.New("doctor reference is required")
)
