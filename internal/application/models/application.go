package models

import (
	"strings"
	"time"

	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

// Status of an estate application. Heir records stay editable regardless of
// status; the status tracks the office's review decision only.
type Status string

const (
	StatusOpen     Status = "open"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusApproved || s == StatusRejected
}

// Application is one estate case filed with the registry. The heir tree hangs
// off it; deleting applications is out of scope, they are decided instead.
type Application struct {
	ID            domain.ApplicationID `json:"id"`
	ApplicantName string               `json:"applicant_name"`
	DeceasedName  string               `json:"deceased_name"`
	Village       string               `json:"village,omitempty"`
	Status        Status               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewApplication constructs a validated application in the open status.
func NewApplication(id domain.ApplicationID, applicantName, deceasedName, village string, now time.Time) (*Application, error) {
	applicantName = strings.TrimSpace(applicantName)
	deceasedName = strings.TrimSpace(deceasedName)
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "application id is required")
	}
	if applicantName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "applicant name is required")
	}
	if deceasedName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "deceased name is required")
	}
	return &Application{
		ID:            id,
		ApplicantName: applicantName,
		DeceasedName:  deceasedName,
		Village:       strings.TrimSpace(village),
		Status:        StatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Decide transitions the application out of the open status. Deciding an
// already decided application is a conflict, not an idempotent no-op, so the
// second reviewer learns the case was already closed.
func (a *Application) Decide(to Status, now time.Time) error {
	if to != StatusApproved && to != StatusRejected {
		return dErrors.Newf(dErrors.CodeValidation, "cannot transition to %q", to)
	}
	if a.Status != StatusOpen {
		return dErrors.Newf(dErrors.CodeConflict, "application already %s", a.Status)
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}

// Clone returns a copy so stores never hand out aliased records.
func (a *Application) Clone() *Application {
	cp := *a
	return &cp
}

// CreateApplicationRequest carries the caller-supplied fields for a new case.
type CreateApplicationRequest struct {
	ApplicantName string `json:"applicant_name"`
	DeceasedName  string `json:"deceased_name"`
	Village       string `json:"village,omitempty"`
}
