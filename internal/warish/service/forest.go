package service

import (
	"context"
	"time"

	"warishd/internal/warish/forest"
	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

// LoadForest returns the assembled, serial-labelled forest for one
// application. Reads go through the cache when one is configured; every
// mutation invalidates it, so a hit is never staler than the last write.
func (s *Service) LoadForest(ctx context.Context, applicationID domain.ApplicationID) (*forest.Forest, error) {
	if cached, err := s.forests.Get(ctx, applicationID); err == nil && cached != nil {
		if s.metrics != nil {
			s.metrics.ForestCacheHits.Inc()
		}
		return cached, nil
	} else if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "forest cache read failed",
			"application_id", applicationID.String(), "error", err.Error())
	}
	if s.metrics != nil {
		s.metrics.ForestCacheMisses.Inc()
	}

	start := time.Now()
	records, err := s.heirs.FindByApplication(ctx, applicationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load heirs")
	}
	f := forest.Assemble(records)
	if s.metrics != nil {
		s.metrics.ObserveAssembly(start)
		s.metrics.OrphansPromoted.Add(float64(len(f.PromotedOrphans)))
	}
	if len(f.PromotedOrphans) > 0 && s.logger != nil {
		s.logger.WarnContext(ctx, "heir records promoted to root: parent id did not resolve",
			"application_id", applicationID.String(),
			"promoted", len(f.PromotedOrphans))
	}

	if err := s.forests.Put(ctx, applicationID, f); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "forest cache write failed",
			"application_id", applicationID.String(), "error", err.Error())
	}
	return f, nil
}

// ListHeirs returns the flat records of one application, unassembled; the
// export surface uses it when the outline structure is not needed.
func (s *Service) ListHeirs(ctx context.Context, applicationID domain.ApplicationID) ([]*models.HeirRecord, error) {
	records, err := s.heirs.FindByApplication(ctx, applicationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list heirs")
	}
	return records, nil
}
