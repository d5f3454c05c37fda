// Package domain holds typed identifiers shared across modules.
//
// Every identifier wraps a UUID so the compiler rejects passing an organisation id
// where a compliance scheme id is expected. Construct ids from external input with the
// Parse functions; they reject empty, malformed and nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "schemereg/pkg/domain-errors"
)

type (
	UserID             uuid.UUID
	OrganisationID     uuid.UUID
	ComplianceSchemeID uuid.UUID
	SelectedSchemeID   uuid.UUID
	SubmissionID       uuid.UUID
	EnrolmentID        uuid.UUID
	RegistrationSetID  uuid.UUID
	FileID             uuid.UUID
)

func parseUUID(s, name string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, name+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+name)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, name+" cannot be nil")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func ParseOrganisationID(s string) (OrganisationID, error) {
	u, err := parseUUID(s, "organisation id")
	return OrganisationID(u), err
}

func ParseComplianceSchemeID(s string) (ComplianceSchemeID, error) {
	u, err := parseUUID(s, "compliance scheme id")
	return ComplianceSchemeID(u), err
}

func ParseSelectedSchemeID(s string) (SelectedSchemeID, error) {
	u, err := parseUUID(s, "selected scheme id")
	return SelectedSchemeID(u), err
}

func ParseSubmissionID(s string) (SubmissionID, error) {
	u, err := parseUUID(s, "submission id")
	return SubmissionID(u), err
}

func ParseEnrolmentID(s string) (EnrolmentID, error) {
	u, err := parseUUID(s, "enrolment id")
	return EnrolmentID(u), err
}

func ParseFileID(s string) (FileID, error) {
	u, err := parseUUID(s, "file id")
	return FileID(u), err
}

func (id UserID) String() string             { return uuid.UUID(id).String() }
func (id OrganisationID) String() string     { return uuid.UUID(id).String() }
func (id ComplianceSchemeID) String() string { return uuid.UUID(id).String() }
func (id SelectedSchemeID) String() string   { return uuid.UUID(id).String() }
func (id SubmissionID) String() string       { return uuid.UUID(id).String() }
func (id EnrolmentID) String() string        { return uuid.UUID(id).String() }
func (id RegistrationSetID) String() string  { return uuid.UUID(id).String() }
func (id FileID) String() string             { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool             { return uuid.UUID(id) == uuid.Nil }
func (id OrganisationID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ComplianceSchemeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SelectedSchemeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SubmissionID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id EnrolmentID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationSetID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id FileID) IsNil() bool             { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps ids as canonical UUID strings in JSON payloads and session documents.

func (id UserID) MarshalText() ([]byte, error)             { return uuid.UUID(id).MarshalText() }
func (id OrganisationID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id ComplianceSchemeID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id SelectedSchemeID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id SubmissionID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id EnrolmentID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id RegistrationSetID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id FileID) MarshalText() ([]byte, error)             { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error             { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *OrganisationID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ComplianceSchemeID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SelectedSchemeID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SubmissionID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EnrolmentID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RegistrationSetID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FileID) UnmarshalText(b []byte) error             { return (*uuid.UUID)(id).UnmarshalText(b) }
