package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// IDAssigner reserves the next display identity of a kind. Satisfied by
// sequence.Assigner.
type IDAssigner interface {
	Next(ctx context.Context, kind sequence.Kind) (string, error)
}

// UserRefResolver resolves weak user references (registeredBy, addedBy,
// createdBy) for embedding in responses. Missing users simply stay
// unresolved.
type UserRefResolver interface {
	GetRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.UserRef, error)
}
