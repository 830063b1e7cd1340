package forest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warishd/internal/warish/models"
	"warishd/pkg/domain"
)

var appID = domain.NewApplicationID()

func record(t *testing.T, name string, parent *domain.HeirID, createdAt time.Time) *models.HeirRecord {
	t.Helper()
	rec, err := models.NewHeirRecord(
		domain.NewHeirID(), appID, parent,
		name, models.GenderMale, models.RelationSon,
		models.LivingStatusAlive, models.MaritalStatusUnmarried, "",
		createdAt,
	)
	require.NoError(t, err)
	return rec
}

// family builds:
//
//	rahim (root, dead)
//	├── karim
//	│   └── salma
//	└── fatima
//	jabbar (root)
func family(t *testing.T) (records []*models.HeirRecord, rahim, karim, salma, fatima, jabbar *models.HeirRecord) {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rahim = record(t, "Rahim", nil, base)
	karim = record(t, "Karim", &rahim.ID, base.Add(time.Minute))
	fatima = record(t, "Fatima", &rahim.ID, base.Add(2*time.Minute))
	salma = record(t, "Salma", &karim.ID, base.Add(3*time.Minute))
	jabbar = record(t, "Jabbar", nil, base.Add(4*time.Minute))
	// Deliberately unordered input.
	records = []*models.HeirRecord{salma, jabbar, fatima, rahim, karim}
	return records, rahim, karim, salma, fatima, jabbar
}

func TestAssemble(t *testing.T) {
	records, rahim, karim, salma, fatima, jabbar := family(t)

	f := Assemble(records)

	require.Len(t, f.Roots, 2)
	assert.Empty(t, f.PromotedOrphans)
	assert.Equal(t, 5, f.Size())

	// Root order follows creation time.
	assert.Equal(t, rahim.ID, f.Roots[0].ID)
	assert.Equal(t, jabbar.ID, f.Roots[1].ID)

	// Every record sits under its parent.
	require.Len(t, f.Roots[0].Children, 2)
	assert.Equal(t, karim.ID, f.Roots[0].Children[0].ID)
	assert.Equal(t, fatima.ID, f.Roots[0].Children[1].ID)
	require.Len(t, f.Roots[0].Children[0].Children, 1)
	assert.Equal(t, salma.ID, f.Roots[0].Children[0].Children[0].ID)
	assert.Empty(t, f.Roots[1].Children)
}

func TestAssembleSerials(t *testing.T) {
	records, _, _, _, _, _ := family(t)

	f := Assemble(records)

	assert.Equal(t, "1", f.Roots[0].Serial)
	assert.Equal(t, "2", f.Roots[1].Serial)
	assert.Equal(t, "1.A", f.Roots[0].Children[0].Serial)
	assert.Equal(t, "1.B", f.Roots[0].Children[1].Serial)
	assert.Equal(t, "1.A.a", f.Roots[0].Children[0].Children[0].Serial)

	assert.Equal(t, 0, f.Roots[0].Depth)
	assert.Equal(t, 1, f.Roots[0].Children[0].Depth)
	assert.Equal(t, 2, f.Roots[0].Children[0].Children[0].Depth)
}

// A record whose parent id points outside the input set is promoted to root
// level instead of being hidden (documented fail-open behavior).
func TestAssembleOrphanPromotion(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	missing := domain.NewHeirID()
	root := record(t, "Root", nil, base)
	orphan := record(t, "Orphan", &missing, base.Add(time.Minute))

	f := Assemble([]*models.HeirRecord{root, orphan})

	require.Len(t, f.Roots, 2)
	assert.Equal(t, []domain.HeirID{orphan.ID}, f.PromotedOrphans)
	assert.Equal(t, orphan.ID, f.Roots[1].ID)
	assert.Equal(t, "2", f.Roots[1].Serial)
}

// Assembling the same input twice yields structurally identical output and
// never mutates the input collection.
func TestAssembleIdempotent(t *testing.T) {
	records, _, _, _, _, _ := family(t)
	inputOrder := make([]domain.HeirID, len(records))
	for i, rec := range records {
		inputOrder[i] = rec.ID
	}

	first := Assemble(records)
	second := Assemble(records)

	assert.Equal(t, first, second)
	for i, rec := range records {
		assert.Equal(t, inputOrder[i], rec.ID)
	}
}

// Mutating an assembled node must not leak into the caller's records.
func TestAssembleCopiesRecords(t *testing.T) {
	records, rahim, _, _, _, _ := family(t)

	f := Assemble(records)
	f.Roots[0].Name = "changed"

	assert.Equal(t, "Rahim", rahim.Name)
}

func TestAssembleEmptyInput(t *testing.T) {
	f := Assemble(nil)
	assert.Empty(t, f.Roots)
	assert.Equal(t, 0, f.Size())
}
