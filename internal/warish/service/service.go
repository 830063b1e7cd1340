// Package service implements the heir hierarchy engine: validated creation
// under the gating rule, mutable-field updates, cascading deletes and
// assembled forest reads. It talks to the heir store directly; the store is
// always the source of truth and the assembled forest is only a read model.
package service

import (
	"context"
	"errors"
	"log/slog"

	"warishd/internal/audit"
	"warishd/internal/warish/cache"
	warishmetrics "warishd/internal/warish/metrics"
	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
	"warishd/pkg/platform/sentinel"
	"warishd/pkg/requestcontext"
)

// Store is the heir node store the engine mutates. Implementations return
// sentinel errors; the service translates them into coded domain errors.
type Store interface {
	FindByApplication(ctx context.Context, applicationID domain.ApplicationID) ([]*models.HeirRecord, error)
	FindByID(ctx context.Context, id domain.HeirID) (*models.HeirRecord, error)
	FindChildren(ctx context.Context, parentID domain.HeirID) ([]*models.HeirRecord, error)
	Insert(ctx context.Context, rec *models.HeirRecord) error
	Update(ctx context.Context, rec *models.HeirRecord) error
	Remove(ctx context.Context, id domain.HeirID) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ApplicationResolver answers whether an estate application exists, so root
// heirs cannot be filed against a case that was never opened.
type ApplicationResolver interface {
	Exists(ctx context.Context, id domain.ApplicationID) (bool, error)
}

// Service orchestrates heir tree mutation for one registry.
type Service struct {
	heirs          Store
	apps           ApplicationResolver
	logger         *slog.Logger
	metrics        *warishmetrics.Metrics
	auditPublisher audit.Publisher
	forests        *cache.ForestCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *warishmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithForestCache(c *cache.ForestCache) Option {
	return func(s *Service) { s.forests = c }
}

func WithApplicationResolver(r ApplicationResolver) Option {
	return func(s *Service) { s.apps = r }
}

// New constructs the heir service.
func New(heirs Store, opts ...Option) *Service {
	s := &Service{heirs: heirs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateHeir validates and persists a new heir record. A child insert
// requires the parent to exist, to belong to the same application, and to
// pass the gating rule: a living heir is the terminal claimant of their
// branch, so only a deceased heir may receive children. That check is a hard
// precondition here, not a presentation affordance.
func (s *Service) CreateHeir(ctx context.Context, applicationID domain.ApplicationID, req *models.CreateHeirRequest) (*models.HeirRecord, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	parentID, err := req.ParsedParentID()
	if err != nil {
		return nil, err
	}

	if s.apps != nil {
		ok, err := s.apps.Exists(ctx, applicationID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve application")
		}
		if !ok {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
	}

	if parentID != nil {
		parent, err := s.heirs.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "parent heir not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve parent heir")
		}
		if parent.ApplicationID != applicationID {
			return nil, dErrors.New(dErrors.CodeValidation, "parent heir belongs to a different application")
		}
		if !parent.CanAcceptChildren() {
			s.incrementGatingRejections()
			return nil, dErrors.New(dErrors.CodeGatingViolation,
				"heirs may only be recorded under a deceased parent")
		}
	}

	rec, err := models.NewHeirRecord(
		domain.NewHeirID(), applicationID, parentID,
		req.Name, models.Gender(req.Gender), models.Relation(req.Relation),
		models.LivingStatus(req.LivingStatus), models.MaritalStatus(req.MaritalStatus),
		req.SpouseName, requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.heirs.Insert(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create heir")
	}

	s.invalidateForest(ctx, applicationID)
	s.logAudit(ctx, audit.EventHeirCreated, applicationID, rec.ID.String(), "")
	if s.metrics != nil {
		s.metrics.HeirsCreated.Inc()
	}
	return rec, nil
}

// UpdateHeir applies a partial update to the mutable fields of a record.
// Patches naming parent_id or application_id are rejected with a validation
// error; those relations are set once at creation and never reassigned.
func (s *Service) UpdateHeir(ctx context.Context, id domain.HeirID, req *models.UpdateHeirRequest) (*models.HeirRecord, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeValidation, "patch contains no updatable fields")
	}

	rec, err := s.heirs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "heir not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load heir")
	}

	rec.ApplyPatch(req.Patch(), requestcontext.Now(ctx))

	if err := s.heirs.Update(ctx, rec); err != nil {
		// Lost a race against a cascade delete: the record is gone, do not
		// resurrect it.
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "heir not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update heir")
	}

	s.invalidateForest(ctx, rec.ApplicationID)
	s.logAudit(ctx, audit.EventHeirUpdated, rec.ApplicationID, rec.ID.String(), "")
	if s.metrics != nil {
		s.metrics.HeirsUpdated.Inc()
	}
	return rec, nil
}

func (s *Service) logAudit(ctx context.Context, action string, applicationID domain.ApplicationID, subjectID, detail string) {
	requestID := requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, action,
			"application_id", applicationID.String(),
			"subject_id", subjectID,
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
		ApplicationID: applicationID.String(),
		SubjectID:     subjectID,
		ActorID:       requestcontext.Actor(ctx),
		RequestID:     requestID,
		Detail:        detail,
	})
}

func (s *Service) invalidateForest(ctx context.Context, applicationID domain.ApplicationID) {
	if err := s.forests.Invalidate(ctx, applicationID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "forest cache invalidation failed",
			"application_id", applicationID.String(), "error", err.Error())
	}
}

func (s *Service) incrementGatingRejections() {
	if s.metrics != nil {
		s.metrics.GatingRejections.Inc()
	}
}
