package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrDuplicatePatientID = errors.New("patient ID already assigned")
	ErrInvalidGender      = errors.New("invalid gender value")
	ErrInvalidBloodType   = errors.New("invalid blood type")
)
