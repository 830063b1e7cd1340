package models

import (
	"strings"

	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

// CreateHeirRequest carries the caller-supplied fields for a new heir record.
// ParentID absent means a root record (direct heir of the deceased).
type CreateHeirRequest struct {
	ParentID      *string `json:"parent_id,omitempty"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Relation      string  `json:"relation"`
	LivingStatus  string  `json:"living_status"`
	MaritalStatus string  `json:"maritial_status"`
	SpouseName    string  `json:"spouse_name,omitempty"`
}

// Normalize trims whitespace and lowercases the enum fields.
func (r *CreateHeirRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Relation = strings.ToLower(strings.TrimSpace(r.Relation))
	r.LivingStatus = strings.ToLower(strings.TrimSpace(r.LivingStatus))
	r.MaritalStatus = strings.ToLower(strings.TrimSpace(r.MaritalStatus))
	r.SpouseName = strings.TrimSpace(r.SpouseName)
}

// Validate checks required fields and vocabulary membership. Parent gating and
// existence are service concerns.
func (r *CreateHeirRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if !Gender(r.Gender).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "gender must be one of male, female; got %q", r.Gender)
	}
	if !Relation(r.Relation).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown relation %q", r.Relation)
	}
	if !LivingStatus(r.LivingStatus).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "living status must be one of alive, dead; got %q", r.LivingStatus)
	}
	if !MaritalStatus(r.MaritalStatus).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown marital status %q", r.MaritalStatus)
	}
	return nil
}

// ParsedParentID resolves the optional parent id string, or nil when absent.
func (r *CreateHeirRequest) ParsedParentID() (*domain.HeirID, error) {
	if r.ParentID == nil || strings.TrimSpace(*r.ParentID) == "" {
		return nil, nil
	}
	id, err := domain.ParseHeirID(strings.TrimSpace(*r.ParentID))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// UpdateHeirRequest is a partial update of a heir record. Only mutable fields
// are accepted; parent_id and application_id are immutable and their presence
// in a patch is rejected rather than silently ignored, so callers learn about
// the mistake deterministically.
type UpdateHeirRequest struct {
	Name          *string `json:"name,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Relation      *string `json:"relation,omitempty"`
	LivingStatus  *string `json:"living_status,omitempty"`
	MaritalStatus *string `json:"maritial_status,omitempty"`
	SpouseName    *string `json:"spouse_name,omitempty"`

	// Immutable fields, decoded only so a patch naming them can be rejected.
	ParentID      *string `json:"parent_id,omitempty"`
	ApplicationID *string `json:"application_id,omitempty"`
}

// Normalize trims and lowercases the fields that are present.
func (r *UpdateHeirRequest) Normalize() {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	lower := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		return &v
	}
	r.Name = trim(r.Name)
	r.Gender = lower(r.Gender)
	r.Relation = lower(r.Relation)
	r.LivingStatus = lower(r.LivingStatus)
	r.MaritalStatus = lower(r.MaritalStatus)
	r.SpouseName = trim(r.SpouseName)
}

// Validate rejects immutable-field patches and vocabulary violations, and
// refuses to blank out required fields.
func (r *UpdateHeirRequest) Validate() error {
	if r.ParentID != nil {
		return dErrors.New(dErrors.CodeValidation, "parent_id is immutable")
	}
	if r.ApplicationID != nil {
		return dErrors.New(dErrors.CodeValidation, "application_id is immutable")
	}
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name must not be empty")
	}
	if r.Gender != nil && !Gender(*r.Gender).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "gender must be one of male, female; got %q", *r.Gender)
	}
	if r.Relation != nil && !Relation(*r.Relation).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown relation %q", *r.Relation)
	}
	if r.LivingStatus != nil && !LivingStatus(*r.LivingStatus).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "living status must be one of alive, dead; got %q", *r.LivingStatus)
	}
	if r.MaritalStatus != nil && !MaritalStatus(*r.MaritalStatus).Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown marital status %q", *r.MaritalStatus)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (r *UpdateHeirRequest) IsEmpty() bool {
	return r.Name == nil && r.Gender == nil && r.Relation == nil &&
		r.LivingStatus == nil && r.MaritalStatus == nil && r.SpouseName == nil
}

// Patch converts the validated request into a typed patch.
func (r *UpdateHeirRequest) Patch() HeirPatch {
	p := HeirPatch{}
	if r.Name != nil {
		p.Name = r.Name
	}
	if r.Gender != nil {
		g := Gender(*r.Gender)
		p.Gender = &g
	}
	if r.Relation != nil {
		rel := Relation(*r.Relation)
		p.Relation = &rel
	}
	if r.LivingStatus != nil {
		ls := LivingStatus(*r.LivingStatus)
		p.LivingStatus = &ls
	}
	if r.MaritalStatus != nil {
		ms := MaritalStatus(*r.MaritalStatus)
		p.MaritalStatus = &ms
	}
	if r.SpouseName != nil {
		p.SpouseName = r.SpouseName
	}
	return p
}

// HeirPatch is the typed set of mutable-field changes applied by the service.
type HeirPatch struct {
	Name          *string
	Gender        *Gender
	Relation      *Relation
	LivingStatus  *LivingStatus
	MaritalStatus *MaritalStatus
	SpouseName    *string
}

// DeleteHeirResult reports the ids removed by a cascading delete, the target
// included, in the order they were deleted (children before parents).
type DeleteHeirResult struct {
	DeletedIDs []domain.HeirID `json:"deleted_ids"`
}
