//go:build integration

package heir_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"warishd/internal/warish/models"
	"warishd/internal/warish/store/heir"
	"warishd/pkg/domain"
	"warishd/pkg/platform/sentinel"
	"warishd/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *heir.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = heir.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "warish_heirs", "warish_applications")
	s.Require().NoError(err)
}

func newTestHeir(appID domain.ApplicationID, parentID *domain.HeirID, name string) *models.HeirRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.HeirRecord{
		ID:            domain.NewHeirID(),
		ApplicationID: appID,
		ParentID:      parentID,
		Name:          name,
		Gender:        models.GenderMale,
		Relation:      models.RelationSon,
		LivingStatus:  models.LivingStatusAlive,
		MaritalStatus: models.MaritalStatusMarried,
		SpouseName:    "Rahima Begum",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *PostgresStoreSuite) TestInsertAndFindByID() {
	ctx := context.Background()
	rec := newTestHeir(domain.NewApplicationID(), nil, "Abdul Karim")

	s.Require().NoError(s.store.Insert(ctx, rec))

	got, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.ID, got.ID)
	s.Equal(rec.Name, got.Name)
	s.Equal(rec.SpouseName, got.SpouseName)
	s.Nil(got.ParentID)
	s.True(rec.CreatedAt.Equal(got.CreatedAt))
}

func (s *PostgresStoreSuite) TestInsertDuplicateConflicts() {
	ctx := context.Background()
	rec := newTestHeir(domain.NewApplicationID(), nil, "Abdul Karim")

	s.Require().NoError(s.store.Insert(ctx, rec))
	err := s.store.Insert(ctx, rec)
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindByApplicationScoped() {
	ctx := context.Background()
	appA := domain.NewApplicationID()
	appB := domain.NewApplicationID()

	root := newTestHeir(appA, nil, "Rahim Uddin")
	child := newTestHeir(appA, &root.ID, "Abdul Karim")
	other := newTestHeir(appB, nil, "Jabbar Ali")
	for _, rec := range []*models.HeirRecord{root, child, other} {
		s.Require().NoError(s.store.Insert(ctx, rec))
	}

	got, err := s.store.FindByApplication(ctx, appA)
	s.Require().NoError(err)
	s.Len(got, 2)
	for _, rec := range got {
		s.Equal(appA, rec.ApplicationID)
	}
}

func (s *PostgresStoreSuite) TestFindChildren() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	root := newTestHeir(appID, nil, "Rahim Uddin")
	child := newTestHeir(appID, &root.ID, "Abdul Karim")
	s.Require().NoError(s.store.Insert(ctx, root))
	s.Require().NoError(s.store.Insert(ctx, child))

	got, err := s.store.FindChildren(ctx, root.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(child.ID, got[0].ID)
	s.Require().NotNil(got[0].ParentID)
	s.Equal(root.ID, *got[0].ParentID)
}

func (s *PostgresStoreSuite) TestUpdateMutatesOnlyMutableColumns() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	root := newTestHeir(appID, nil, "Rahim Uddin")
	child := newTestHeir(appID, &root.ID, "Abdul Karim")
	s.Require().NoError(s.store.Insert(ctx, root))
	s.Require().NoError(s.store.Insert(ctx, child))

	child.Name = "Abdul Karim Mia"
	child.LivingStatus = models.LivingStatusDead
	child.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(s.store.Update(ctx, child))

	got, err := s.store.FindByID(ctx, child.ID)
	s.Require().NoError(err)
	s.Equal("Abdul Karim Mia", got.Name)
	s.Equal(models.LivingStatusDead, got.LivingStatus)
	s.Require().NotNil(got.ParentID)
	s.Equal(root.ID, *got.ParentID)
}

func (s *PostgresStoreSuite) TestUpdateMissingNotFound() {
	ctx := context.Background()
	rec := newTestHeir(domain.NewApplicationID(), nil, "Abdul Karim")
	err := s.store.Update(ctx, rec)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRemove() {
	ctx := context.Background()
	rec := newTestHeir(domain.NewApplicationID(), nil, "Abdul Karim")
	s.Require().NoError(s.store.Insert(ctx, rec))

	s.Require().NoError(s.store.Remove(ctx, rec.ID))
	_, err := s.store.FindByID(ctx, rec.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.Remove(ctx, rec.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRunInTxRollsBackOnError() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	root := newTestHeir(appID, nil, "Rahim Uddin")
	child := newTestHeir(appID, &root.ID, "Abdul Karim")
	s.Require().NoError(s.store.Insert(ctx, root))
	s.Require().NoError(s.store.Insert(ctx, child))

	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Remove(txCtx, child.ID); err != nil {
			return err
		}
		// Second remove fails and must undo the first.
		return s.store.Remove(txCtx, domain.NewHeirID())
	})
	s.ErrorIs(err, sentinel.ErrNotFound)

	got, err := s.store.FindByApplication(ctx, appID)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *PostgresStoreSuite) TestRunInTxCommits() {
	ctx := context.Background()
	appID := domain.NewApplicationID()
	root := newTestHeir(appID, nil, "Rahim Uddin")
	child := newTestHeir(appID, &root.ID, "Abdul Karim")
	s.Require().NoError(s.store.Insert(ctx, root))
	s.Require().NoError(s.store.Insert(ctx, child))

	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Remove(txCtx, child.ID); err != nil {
			return err
		}
		return s.store.Remove(txCtx, root.ID)
	})
	s.Require().NoError(err)

	got, err := s.store.FindByApplication(ctx, appID)
	s.Require().NoError(err)
	s.Empty(got)
}
