package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupPatientService() (*PatientService, *MockPatientRepository, *MockIDAssigner, *MockUserRefResolver) {
	repo := &MockPatientRepository{}
	assigner := &MockIDAssigner{}
	users := &MockUserRefResolver{}
	svc := NewPatientService(repo, assigner, users, zap.NewNop())
	return svc, repo, assigner, users
}

func validPatientCreate() *patient.CreatePatientCommand {
	return &patient.CreatePatientCommand{
		PersonalInfo: patient.PersonalInfo{
			FirstName:   "Arun",
			LastName:    "Menon",
			DateOfBirth: time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC),
			Gender:      patient.GenderMale,
			Phone:       "555-0101",
		},
	}
}

func TestRegisterPatientAssignsDisplayID(t *testing.T) {
	svc, repo, assigner, _ := setupPatientService()

	assigner.On("Next", mock.Anything, sequence.KindPatient).Return("PAT000042", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*patient.Patient")).Return(nil)

	p, err := svc.RegisterPatient(context.Background(), validPatientCreate())

	assert.NoError(t, err)
	assert.Equal(t, "PAT000042", p.PatientID)
	assert.True(t, p.IsActive)
	repo.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

func TestRegisterPatientResolvesRegistrar(t *testing.T) {
	svc, repo, assigner, users := setupPatientService()
	registrarID := uuid.New()

	assigner.On("Next", mock.Anything, sequence.KindPatient).Return("PAT000001", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("GetRefs", mock.Anything, []uuid.UUID{registrarID}).Return(map[uuid.UUID]*domain.UserRef{
		registrarID: {ID: registrarID, Name: "Front Desk", Email: "desk@clinic.test"},
	}, nil)

	cmd := validPatientCreate()
	cmd.RegisteredBy = &registrarID

	p, err := svc.RegisterPatient(context.Background(), cmd)

	assert.NoError(t, err)
	assert.NotNil(t, p.Registrar)
	assert.Equal(t, "Front Desk", p.Registrar.Name)
}

func TestRegisterPatientValidation(t *testing.T) {
	svc, _, _, _ := setupPatientService()

	cmd := validPatientCreate()
	cmd.PersonalInfo.FirstName = "  "
	cmd.PersonalInfo.Gender = "unknown"
	cmd.MedicalInfo.BloodType = "C+"

	p, err := svc.RegisterPatient(context.Background(), cmd)

	assert.Nil(t, p)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 3)
}

func TestRegisterPatientMissingRegistrarDoesNotFailRead(t *testing.T) {
	svc, repo, assigner, users := setupPatientService()
	registrarID := uuid.New()

	assigner.On("Next", mock.Anything, sequence.KindPatient).Return("PAT000002", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	// Resolver returns an empty map: the registrar was deleted.
	users.On("GetRefs", mock.Anything, mock.Anything).Return(map[uuid.UUID]*domain.UserRef{}, nil)

	cmd := validPatientCreate()
	cmd.RegisteredBy = &registrarID

	p, err := svc.RegisterPatient(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Nil(t, p.Registrar)
}

func TestDeactivatePatient(t *testing.T) {
	svc, repo, _, _ := setupPatientService()
	id := uuid.New()

	repo.On("Deactivate", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.DeactivatePatient(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestDeactivatePatientNotFound(t *testing.T) {
	svc, repo, _, _ := setupPatientService()
	id := uuid.New()

	repo.On("Deactivate", mock.Anything, id).Return(patient.ErrPatientNotFound)

	err := svc.DeactivatePatient(context.Background(), id)
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestListPatientsNormalizesPagination(t *testing.T) {
	svc, repo, _, _ := setupPatientService()

	repo.On("List", mock.Anything, mock.MatchedBy(func(q *patient.ListPatientsQuery) bool {
		return q.Page == 1 && q.PageSize == defaultPageSize
	})).Return(&patient.PagedPatients{Page: 1, PageSize: defaultPageSize}, nil)

	_, err := svc.ListPatients(context.Background(), &patient.ListPatientsQuery{Page: 0, PageSize: -3})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPatientsCapsPageSize(t *testing.T) {
	svc, repo, _, _ := setupPatientService()

	repo.On("List", mock.Anything, mock.MatchedBy(func(q *patient.ListPatientsQuery) bool {
		return q.PageSize == maxPageSize
	})).Return(&patient.PagedPatients{}, nil)

	_, err := svc.ListPatients(context.Background(), &patient.ListPatientsQuery{Page: 1, PageSize: 10000})
	assert.NoError(t, err)
}
