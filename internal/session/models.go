package session

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"schemereg/internal/journey"
	id "schemereg/pkg/domain"
)

// Session is the workflow state kept for one browser session. It is a value: handlers
// copy it, derive the next state and hand it to Manager.Save.
type Session struct {
	UserData                 UserData                        `json:"userData"`
	Registration             RegistrationSession             `json:"registrationSession"`
	SchemeMembership         SchemeMembershipSession         `json:"schemeMembershipSession"`
	NominatedDelegatedPerson NominatedDelegatedPersonSession `json:"nominatedDelegatedPersonSession"`
	// Version is bumped on every save. Saves are last-write-wins; it is only diagnostic.
	Version int64 `json:"version"`
}

// UserData is a snapshot of the signed-in user.
type UserData struct {
	ID            id.UserID      `json:"id"`
	Email         string         `json:"email"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	ServiceRole   string         `json:"serviceRole"`
	Organisations []Organisation `json:"organisations"`
}

// FullName joins first and last name.
func (u UserData) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Organisation is an organisation the user belongs to.
type Organisation struct {
	ID                 id.OrganisationID `json:"id"`
	Name               string            `json:"name"`
	OrganisationRole   string            `json:"organisationRole"`
	IsComplianceScheme bool              `json:"isComplianceScheme"`
	EnrolmentStatus    string            `json:"enrolmentStatus"`
	NationID           int               `json:"nationId"`
}

// ComplianceScheme is the scheme a user is acting for or a producer is a member of.
type ComplianceScheme struct {
	ID               id.ComplianceSchemeID `json:"id"`
	Name             string                `json:"name"`
	SelectedSchemeID id.SelectedSchemeID   `json:"selectedSchemeId"`
	NationID         int                   `json:"nationId"`
}

// RegistrationSession holds packaging data and organisation details upload state.
type RegistrationSession struct {
	Journey                  journey.Journey      `json:"journey"`
	SelectedComplianceScheme *ComplianceScheme    `json:"selectedComplianceScheme,omitempty"`
	CurrentComplianceScheme  *ComplianceScheme    `json:"currentComplianceScheme,omitempty"`
	SubmissionPeriod         string               `json:"submissionPeriod"`
	SubmissionDeadline       time.Time            `json:"submissionDeadline"`
	LatestRegistrationSet    map[string]uuid.UUID `json:"latestRegistrationSet,omitempty"`
	IsUpdateJourney          bool                 `json:"isUpdateJourney"`
	FileID                   id.FileID            `json:"fileId"`
	SubmissionID             id.SubmissionID      `json:"submissionId"`
}

// WithRegistrationSet returns a copy with the registration set of period set to setID.
func (r RegistrationSession) WithRegistrationSet(period string, setID uuid.UUID) RegistrationSession {
	next := maps.Clone(r.LatestRegistrationSet)
	if next == nil {
		next = map[string]uuid.UUID{}
	}
	next[period] = setID
	r.LatestRegistrationSet = next
	return r
}

// WithoutRegistrationSet returns a copy without the registration set of period, so the
// next upload for the period starts a new set.
func (r RegistrationSession) WithoutRegistrationSet(period string) RegistrationSession {
	next := maps.Clone(r.LatestRegistrationSet)
	delete(next, period)
	r.LatestRegistrationSet = next
	return r
}

// RegistrationSetFor returns the registration set of period, minting one when absent.
// The second return reports whether a new id was minted and must be saved.
func (r RegistrationSession) RegistrationSetFor(period string) (uuid.UUID, bool) {
	if setID, ok := r.LatestRegistrationSet[period]; ok {
		return setID, false
	}
	return uuid.New(), true
}

// OrganisationScope is the compliance scheme the user acts for, if any.
func (r RegistrationSession) OrganisationScope() *id.ComplianceSchemeID {
	if r.SelectedComplianceScheme == nil {
		return nil
	}
	csID := r.SelectedComplianceScheme.ID
	return &csID
}

// SchemeMembershipSession holds member removal state.
type SchemeMembershipSession struct {
	Journey                  journey.Journey `json:"journey"`
	SelectedReasonForRemoval string          `json:"selectedReasonForRemoval"`
	TellUsMore               string          `json:"tellUsMore"`
	RemovedSchemeMember      string          `json:"removedSchemeMember"`
}

// NominatedDelegatedPersonSession holds nomination acceptance state.
type NominatedDelegatedPersonSession struct {
	Journey              journey.Journey `json:"journey"`
	NomineeFullName      string          `json:"nomineeFullName"`
	NominatorFullName    string          `json:"nominatorFullName"`
	NominatorServiceRole string          `json:"nominatorServiceRole"`
	TelephoneNumber      string          `json:"telephoneNumber"`
	OrganisationName     string          `json:"organisationName"`
}

// Journey returns the journey of family.
func (s Session) Journey(family journey.Family) journey.Journey {
	switch family {
	case journey.FamilyRegistration:
		return s.Registration.Journey
	case journey.FamilySchemeMembership:
		return s.SchemeMembership.Journey
	case journey.FamilyNominatedDelegatedPerson:
		return s.NominatedDelegatedPerson.Journey
	default:
		return journey.Journey{}
	}
}

// WithJourney returns a copy of s with the journey of family replaced.
func (s Session) WithJourney(family journey.Family, j journey.Journey) Session {
	switch family {
	case journey.FamilyRegistration:
		s.Registration.Journey = j
	case journey.FamilySchemeMembership:
		s.SchemeMembership.Journey = j
	case journey.FamilyNominatedDelegatedPerson:
		s.NominatedDelegatedPerson.Journey = j
	}
	return s
}
