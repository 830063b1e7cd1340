// Package service implements the estate application lifecycle: filing,
// lookup and the approve/reject decision. The heir tree of a case is managed
// by the warish engine; this service only guards the case itself.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"warishd/internal/application/models"
	"warishd/internal/audit"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
	"warishd/pkg/platform/sentinel"
	"warishd/pkg/requestcontext"
)

// Store is the application store the service depends on.
type Store interface {
	FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	Insert(ctx context.Context, rec *models.Application) error
	Update(ctx context.Context, rec *models.Application) error
}

// Service orchestrates estate application lifecycle management.
type Service struct {
	apps           Store
	logger         *slog.Logger
	auditPublisher audit.Publisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

// New constructs the application service.
func New(apps Store, opts ...Option) *Service {
	s := &Service{apps: apps}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create files a new estate case in the open status.
func (s *Service) Create(ctx context.Context, req *models.CreateApplicationRequest) (*models.Application, error) {
	rec, err := models.NewApplication(
		domain.NewApplicationID(),
		strings.TrimSpace(req.ApplicantName),
		strings.TrimSpace(req.DeceasedName),
		req.Village,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}
	if err := s.apps.Insert(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}
	s.logAudit(ctx, audit.EventApplicationCreated, rec.ID, string(rec.Status))
	return rec, nil
}

// Get returns one application by id.
func (s *Service) Get(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	rec, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}
	return rec, nil
}

// List returns all applications in filing order.
func (s *Service) List(ctx context.Context) ([]*models.Application, error) {
	recs, err := s.apps.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return recs, nil
}

// Approve closes an open application as approved.
func (s *Service) Approve(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	return s.decide(ctx, id, models.StatusApproved)
}

// Reject closes an open application as rejected.
func (s *Service) Reject(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	return s.decide(ctx, id, models.StatusRejected)
}

func (s *Service) decide(ctx context.Context, id domain.ApplicationID, to models.Status) (*models.Application, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.Decide(to, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.apps.Update(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application")
	}
	s.logAudit(ctx, audit.EventApplicationDecided, rec.ID, string(rec.Status))
	return rec, nil
}

// Exists reports whether the application is on file, regardless of status.
// The warish engine uses it to refuse heirs on cases that were never opened.
func (s *Service) Exists(ctx context.Context, id domain.ApplicationID) (bool, error) {
	_, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) logAudit(ctx context.Context, action string, id domain.ApplicationID, detail string) {
	requestID := requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, action,
			"application_id", id.String(),
			"request_id", requestID,
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		Action:        action,
		ApplicationID: id.String(),
		ActorID:       requestcontext.Actor(ctx),
		RequestID:     requestID,
		Detail:        detail,
	})
}
