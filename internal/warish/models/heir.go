package models

import (
	"strings"
	"time"

	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

// Gender of a recorded heir.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// LivingStatus drives the gating rule: only a deceased heir may have
// descendants recorded beneath them.
type LivingStatus string

const (
	LivingStatusAlive LivingStatus = "alive"
	LivingStatusDead  LivingStatus = "dead"
)

func (s LivingStatus) Valid() bool {
	return s == LivingStatusAlive || s == LivingStatusDead
}

// MaritalStatus of a recorded heir.
type MaritalStatus string

const (
	MaritalStatusMarried   MaritalStatus = "married"
	MaritalStatusUnmarried MaritalStatus = "unmarried"
	MaritalStatusDivorced  MaritalStatus = "divorced"
	MaritalStatusWidowed   MaritalStatus = "widowed"
)

func (s MaritalStatus) Valid() bool {
	switch s {
	case MaritalStatusMarried, MaritalStatusUnmarried, MaritalStatusDivorced, MaritalStatusWidowed:
		return true
	}
	return false
}

// Relation is a kinship term from the shared vocabulary. Some terms are
// gender-specific by convention, but that pairing is enforced at the form
// layer, not here: the model stores any vocabulary term alongside any gender
// so legacy records survive round-trips unchanged.
type Relation string

const (
	RelationSon           Relation = "son"
	RelationDaughter      Relation = "daughter"
	RelationWife          Relation = "wife"
	RelationHusband       Relation = "husband"
	RelationFather        Relation = "father"
	RelationMother        Relation = "mother"
	RelationBrother       Relation = "brother"
	RelationSister        Relation = "sister"
	RelationGrandson      Relation = "grandson"
	RelationGranddaughter Relation = "granddaughter"
)

var relationVocabulary = map[Relation]struct{}{
	RelationSon: {}, RelationDaughter: {}, RelationWife: {}, RelationHusband: {},
	RelationFather: {}, RelationMother: {}, RelationBrother: {}, RelationSister: {},
	RelationGrandson: {}, RelationGranddaughter: {},
}

func (r Relation) Valid() bool {
	_, ok := relationVocabulary[r]
	return ok
}

// HeirRecord is one person in an estate-claim tree.
//
// Invariants:
//   - Name is non-empty
//   - Gender, LivingStatus, MaritalStatus and Relation come from their
//     respective vocabularies
//   - ParentID, when set, references a record of the same application
//   - ParentID and ApplicationID are immutable after creation
//
// The parent relation is a foreign-key-style back-reference, never an owning
// pointer; the forest package resolves it into an explicit tree on read.
type HeirRecord struct {
	ID            domain.HeirID        `json:"id"`
	ApplicationID domain.ApplicationID `json:"application_id"`
	ParentID      *domain.HeirID       `json:"parent_id,omitempty"`
	Name          string               `json:"name"`
	Gender        Gender               `json:"gender"`
	Relation      Relation             `json:"relation"`
	LivingStatus  LivingStatus         `json:"living_status"`
	// Field name keeps the registry's historical spelling.
	MaritalStatus MaritalStatus `json:"maritial_status"`
	// SpouseName is semantically meaningful only for married female heirs by
	// domain convention, but is stored regardless to avoid silent data loss.
	SpouseName string    `json:"spouse_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewHeirRecord constructs a validated heir record.
func NewHeirRecord(
	id domain.HeirID,
	applicationID domain.ApplicationID,
	parentID *domain.HeirID,
	name string,
	gender Gender,
	relation Relation,
	living LivingStatus,
	marital MaritalStatus,
	spouseName string,
	now time.Time,
) (*HeirRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "heir name is required")
	}
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "heir id is required")
	}
	if applicationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "application id is required")
	}
	if !gender.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown gender %q", gender)
	}
	if !relation.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown relation %q", relation)
	}
	if !living.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown living status %q", living)
	}
	if !marital.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown marital status %q", marital)
	}
	return &HeirRecord{
		ID:            id,
		ApplicationID: applicationID,
		ParentID:      parentID,
		Name:          name,
		Gender:        gender,
		Relation:      relation,
		LivingStatus:  living,
		MaritalStatus: marital,
		SpouseName:    strings.TrimSpace(spouseName),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CanAcceptChildren is the gating predicate: inheritance devolves to the next
// generation only once the current heir is deceased, so a living heir is the
// terminal claimant of their branch.
func (h *HeirRecord) CanAcceptChildren() bool {
	return h.LivingStatus == LivingStatusDead
}

// IsRoot reports whether the record is a direct heir of the deceased.
func (h *HeirRecord) IsRoot() bool {
	return h.ParentID == nil
}

// ApplyPatch mutates the mutable fields in place and refreshes UpdatedAt.
// Validate the patch first; ApplyPatch assumes it passed.
func (h *HeirRecord) ApplyPatch(p HeirPatch, now time.Time) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Gender != nil {
		h.Gender = *p.Gender
	}
	if p.Relation != nil {
		h.Relation = *p.Relation
	}
	if p.LivingStatus != nil {
		h.LivingStatus = *p.LivingStatus
	}
	if p.MaritalStatus != nil {
		h.MaritalStatus = *p.MaritalStatus
	}
	if p.SpouseName != nil {
		h.SpouseName = strings.TrimSpace(*p.SpouseName)
	}
	h.UpdatedAt = now
}

// Clone returns a deep copy so stores never hand out aliased records.
func (h *HeirRecord) Clone() *HeirRecord {
	cp := *h
	if h.ParentID != nil {
		pid := *h.ParentID
		cp.ParentID = &pid
	}
	return &cp
}
