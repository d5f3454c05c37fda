package accounts

import (
	"time"

	id "schemereg/pkg/domain"
)

// ComplianceScheme is a scheme run by an operator organisation.
type ComplianceScheme struct {
	ID        id.ComplianceSchemeID `json:"id"`
	Name      string                `json:"name"`
	NationID  int                   `json:"nationId"`
	CreatedOn time.Time             `json:"createdOn"`
}

// ProducerComplianceScheme links a producer to the scheme it has selected.
type ProducerComplianceScheme struct {
	SelectedSchemeID             id.SelectedSchemeID   `json:"selectedSchemeId"`
	ComplianceSchemeID           id.ComplianceSchemeID `json:"complianceSchemeId"`
	ComplianceSchemeName         string                `json:"complianceSchemeName"`
	ComplianceSchemeOperatorName string                `json:"complianceSchemeOperatorName"`
	ComplianceSchemeOperatorID   id.OrganisationID     `json:"complianceSchemeOperatorId"`
}

// ComplianceSchemeSummary is the dashboard summary of a scheme.
type ComplianceSchemeSummary struct {
	Name                 string     `json:"name"`
	Nation               string     `json:"nation"`
	CompanyHouseNumber   string     `json:"companyHouseNumber"`
	MemberCount          int        `json:"memberCount"`
	MembersLastUpdatedOn *time.Time `json:"membersLastUpdatedOn,omitempty"`
}

// SchemeMember is one producer in a scheme's member list.
type SchemeMember struct {
	SelectedSchemeID   id.SelectedSchemeID `json:"selectedSchemeId"`
	OrganisationNumber string              `json:"organisationNumber"`
	OrganisationName   string              `json:"organisationName"`
}

// SchemeMembers is one page of a scheme's members.
type SchemeMembers struct {
	Items       []SchemeMember `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalItems  int            `json:"totalItems"`
	PageSize    int            `json:"pageSize"`
	LinkedCount int            `json:"linkedOrganisationCount"`
}

// SchemeMembersQuery pages and filters the member list.
type SchemeMembersQuery struct {
	Search   string
	Page     int
	PageSize int
}

// SchemeMemberDetails describes one member organisation.
type SchemeMemberDetails struct {
	OrganisationName   string `json:"organisationName"`
	OrganisationNumber string `json:"organisationNumber"`
	RegisteredNation   string `json:"registeredNation"`
	OrganisationType   string `json:"organisationType"`
	CompanyHouseNumber string `json:"companyHouseNumber"`
	ProducerType       string `json:"producerType"`
}

// ReasonForRemoval is a selectable reason for removing a member.
type ReasonForRemoval struct {
	Code string `json:"code"`
	// RequiresReason marks reasons that need free-text detail.
	RequiresReason bool `json:"requiresReason"`
}

// RemovedMember is returned when a member is removed.
type RemovedMember struct {
	OrganisationName string `json:"organisationName"`
}

// Notification is a dashboard notification for the user.
type Notification struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

// Notification types.
const (
	NotificationDelegatedPersonNomination      = "DelegatedPersonNomination"
	NotificationDelegatedPersonPendingApproval = "DelegatedPersonPendingApproval"
	NotificationApprovedPersonAccountAccepted  = "ApprovedPersonAccountAccepted"
)

// NominationRequest describes a pending delegated person nomination.
type NominationRequest struct {
	OrganisationName     string `json:"organisationName"`
	NominatorFullName    string `json:"nominatorFullName"`
	NominatorServiceRole string `json:"nominatorServiceRole"`
	NomineeFullName      string `json:"nomineeFullName"`
}

// AcceptNominationRequest accepts a nomination.
type AcceptNominationRequest struct {
	Telephone          string `json:"telephone"`
	NomineeDeclaration string `json:"nomineeDeclaration"`
}

// UserAccount is the signed-in user as known to the accounts service.
type UserAccount struct {
	ID            id.UserID             `json:"id"`
	Email         string                `json:"email"`
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	ServiceRole   string                `json:"serviceRole"`
	Organisations []AccountOrganisation `json:"organisations"`
}

// AccountOrganisation is an organisation the user is enrolled in.
type AccountOrganisation struct {
	ID               id.OrganisationID `json:"id"`
	Name             string            `json:"name"`
	OrganisationRole string            `json:"organisationRole"`
	OrganisationType string            `json:"organisationType"`
	EnrolmentStatus  string            `json:"enrolmentStatus"`
	NationID         int               `json:"nationId"`
}

// Organisation roles.
const (
	OrganisationRoleComplianceScheme = "Compliance Scheme"
	OrganisationRoleProducer         = "Producer"
)
