// Package domain defines typed identifiers used across the service.
//
// Each identifier is a distinct type over uuid.UUID so heir and application
// ids cannot be swapped at compile time. Parse helpers enforce the invariant
// that ids are valid, non-empty, non-nil UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "warishd/pkg/domain-errors"
)

// ApplicationID identifies one estate-inheritance application (one forest).
type ApplicationID uuid.UUID

// HeirID identifies one heir record within an application.
type HeirID uuid.UUID

// NewHeirID returns a fresh random heir id.
func NewHeirID() HeirID { return HeirID(uuid.New()) }

// NewApplicationID returns a fresh random application id.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

func (id HeirID) String() string        { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }

func (id HeirID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps the canonical UUID form in JSON and cache entries;
// without these the defined types would serialize as raw byte arrays.

func (id HeirID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *HeirID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = HeirID(u)
	return nil
}

func (id ApplicationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ApplicationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ApplicationID(u)
	return nil
}

// ParseHeirID parses and validates a heir id from its string form.
func ParseHeirID(raw string) (HeirID, error) {
	u, err := parseUUID(raw, "heir id")
	return HeirID(u), err
}

// ParseApplicationID parses and validates an application id from its string form.
func ParseApplicationID(raw string) (ApplicationID, error) {
	u, err := parseUUID(raw, "application id")
	return ApplicationID(u), err
}

func parseUUID(raw, what string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", what)
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", what)
	}
	return u, nil
}
