package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"warishd/internal/audit"
	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
	"warishd/pkg/platform/sentinel"
)

// DeleteHeir removes a record together with its entire descendant subtree.
// Descendants are discovered against the live store, not a previously
// assembled forest, and deleted children-before-parents inside a store
// transaction where the store provides one. On partial failure the returned
// CascadeError names exactly which ids were removed and which remain, based
// on a post-failure re-read of the store.
func (s *Service) DeleteHeir(ctx context.Context, id domain.HeirID) (*models.DeleteHeirResult, error) {
	start := time.Now()

	root, err := s.heirs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "heir not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load heir")
	}

	order, err := s.collectSubtree(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to walk heir subtree")
	}

	err = s.heirs.RunInTx(ctx, func(txCtx context.Context) error {
		for _, victim := range order {
			if err := s.heirs.Remove(txCtx, victim); err != nil {
				// A concurrent delete already removed it; the cascade's goal
				// is absence, so keep going.
				if errors.Is(err, sentinel.ErrNotFound) {
					continue
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.CascadeFailures.Inc()
		}
		return nil, s.reportCascadeFailure(ctx, order, err)
	}

	s.invalidateForest(ctx, root.ApplicationID)
	s.logAudit(ctx, audit.EventHeirDeleted, root.ApplicationID, root.ID.String(), joinIDs(order))
	if s.metrics != nil {
		s.metrics.HeirsDeleted.Add(float64(len(order)))
		s.metrics.ObserveCascade(start)
	}
	return &models.DeleteHeirResult{DeletedIDs: order}, nil
}

// collectSubtree walks the live store breadth-first from id with an explicit
// worklist (no unbounded recursion on pathological trees) and returns the
// subtree in deletion order: children strictly before their parents, the
// target last.
func (s *Service) collectSubtree(ctx context.Context, id domain.HeirID) ([]domain.HeirID, error) {
	discovery := []domain.HeirID{id}
	for i := 0; i < len(discovery); i++ {
		children, err := s.heirs.FindChildren(ctx, discovery[i])
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			discovery = append(discovery, child.ID)
		}
	}
	// Discovery order has parents before children; reverse it for deletion.
	order := make([]domain.HeirID, len(discovery))
	for i, victim := range discovery {
		order[len(discovery)-1-i] = victim
	}
	return order, nil
}

// reportCascadeFailure re-reads the store after a failed cascade so the
// error reflects ground truth: with a transactional store the rollback
// restores everything, without one the partial progress is visible. Either
// way the caller learns exactly which ids still exist.
func (s *Service) reportCascadeFailure(ctx context.Context, intended []domain.HeirID, cause error) error {
	var deleted, remaining []string
	for _, victim := range intended {
		if _, err := s.heirs.FindByID(ctx, victim); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				deleted = append(deleted, victim.String())
				continue
			}
			// Store unreadable: assume present so nobody trusts a deletion
			// that may not have happened.
			remaining = append(remaining, victim.String())
			continue
		}
		remaining = append(remaining, victim.String())
	}
	cascade := dErrors.NewCascadeError(deleted, remaining, cause)
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "cascade delete incomplete",
			"deleted", deleted, "remaining", remaining, "error", cause.Error())
	}
	return cascade
}

func joinIDs(ids []domain.HeirID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
