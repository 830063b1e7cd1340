package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"warishd/internal/application/models"
	appstore "warishd/internal/application/store/application"
	"warishd/internal/audit"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
	"warishd/pkg/testutil"
)

type ApplicationServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *appstore.InMemory
	auditLog *audit.InMemoryStore
	svc      *Service
}

func (s *ApplicationServiceSuite) SetupTest() {
	s.ctx = testutil.Context()
	s.store = appstore.NewInMemory()
	s.auditLog = audit.NewInMemoryStore()
	s.svc = New(s.store, WithAuditPublisher(publisherFunc(func(ctx context.Context, event audit.Event) error {
		return s.auditLog.Append(ctx, event)
	})))
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceSuite))
}

type publisherFunc func(ctx context.Context, event audit.Event) error

func (f publisherFunc) Emit(ctx context.Context, event audit.Event) error { return f(ctx, event) }

func (s *ApplicationServiceSuite) file() *models.Application {
	rec, err := s.svc.Create(s.ctx, &models.CreateApplicationRequest{
		ApplicantName: "Abdul Karim",
		DeceasedName:  "Rahim Uddin",
		Village:       "Charghat",
	})
	s.Require().NoError(err)
	return rec
}

func (s *ApplicationServiceSuite) TestCreate() {
	rec := s.file()

	s.Equal(models.StatusOpen, rec.Status)
	s.Equal("Abdul Karim", rec.ApplicantName)
	s.Equal(testutil.FixedTime, rec.CreatedAt)

	got, err := s.svc.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.ID, got.ID)
}

func (s *ApplicationServiceSuite) TestCreateRequiresNames() {
	_, err := s.svc.Create(s.ctx, &models.CreateApplicationRequest{DeceasedName: "Rahim Uddin"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.Create(s.ctx, &models.CreateApplicationRequest{ApplicantName: "Abdul Karim"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ApplicationServiceSuite) TestGetNotFound() {
	_, err := s.svc.Get(s.ctx, domain.NewApplicationID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ApplicationServiceSuite) TestList() {
	first := s.file()
	second := s.file()

	recs, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Len(recs, 2)
	ids := []domain.ApplicationID{recs[0].ID, recs[1].ID}
	s.Contains(ids, first.ID)
	s.Contains(ids, second.ID)
}

func (s *ApplicationServiceSuite) TestApprove() {
	rec := s.file()

	decided, err := s.svc.Approve(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, decided.Status)

	got, err := s.svc.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, got.Status)
}

func (s *ApplicationServiceSuite) TestDecideTwiceConflicts() {
	rec := s.file()

	_, err := s.svc.Reject(s.ctx, rec.ID)
	s.Require().NoError(err)

	_, err = s.svc.Approve(s.ctx, rec.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	got, err := s.svc.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, got.Status)
}

func (s *ApplicationServiceSuite) TestExists() {
	rec := s.file()

	ok, err := s.svc.Exists(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.svc.Exists(s.ctx, domain.NewApplicationID())
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ApplicationServiceSuite) TestAuditTrail() {
	rec := s.file()
	_, err := s.svc.Approve(s.ctx, rec.ID)
	s.Require().NoError(err)

	events := s.auditLog.Events()
	s.Require().Len(events, 2)
	s.Equal(audit.EventApplicationCreated, events[0].Action)
	s.Equal(audit.EventApplicationDecided, events[1].Action)
	s.Equal("approved", events[1].Detail)
}
