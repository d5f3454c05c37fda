package journey

import (
	"fmt"

	dErrors "schemereg/pkg/domain-errors"
)

// Family names an independent journey kept in its own sub-session.
type Family string

const (
	FamilyRegistration             Family = "registration"
	FamilySchemeMembership         Family = "scheme_membership"
	FamilyNominatedDelegatedPerson Family = "nominated_delegated_person"
)

// Flow is the transition table of one journey family.
type Flow struct {
	Family Family
	// Start is the entry page every journey of this family begins at.
	Start Page
	// Fallback is where a user with no journey at all is sent.
	Fallback string
	allowed  map[Page][]Page
}

// Allows reports whether to may directly follow from.
func (f Flow) Allows(from, to Page) bool {
	for _, p := range f.allowed[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Next returns the pages that may follow from.
func (f Flow) Next(from Page) []Page {
	return append([]Page(nil), f.allowed[from]...)
}

// Advance records a move from one step to the next. Forward history after from is
// discarded so stale entries cannot grant access after the user branches.
func (f Flow) Advance(j Journey, from, to Step) (Journey, error) {
	if !f.Allows(from.Page, to.Page) {
		return j, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("%s journey: %s cannot follow %s", f.Family, to.Page, from.Page))
	}
	return j.ClearRestOfJourney(from).AddIfNotExists(to), nil
}

// Restart begins a fresh journey at entry, dropping all previous history.
func (f Flow) Restart(entry Step) Journey {
	return New(entry)
}

// Registration covers both packaging data and organisation details submissions, which share
// one journey rooted at the landing page.
var Registration = Flow{
	Family:   FamilyRegistration,
	Start:    PageLanding,
	Fallback: string(PageLanding),
	allowed: map[Page][]Page{
		PageLanding: {PageFileUploadSubLanding, PageCompanyDetailsSubLanding},

		PageFileUploadSubLanding: {PageFileUpload, PageFileUploadCheckFileAndSubmit},
		PageFileUpload:           {PageFileUploading},
		PageFileUploading: {
			PageFileUploadCheckFileAndSubmit,
			PageFileUploadFailure,
		},
		PageFileUploadFailure:            {PageFileUpload},
		PageFileUploadCheckFileAndSubmit: {PageFileUploadSubmissionDeclaration, PageFileUpload},
		PageFileUploadSubmissionDeclaration: {
			PageFileUploadSubmissionConfirmation,
			PageFileUploadSubmissionError,
		},

		PageCompanyDetailsSubLanding: {PageFileUploadCompanyDetails, PageReviewOrganisationData},
		PageFileUploadCompanyDetails: {PageFileUploadingCompanyDetails},
		PageFileUploadingCompanyDetails: {
			PageFileUploadBrands,
			PageFileUploadPartnerships,
			PageReviewOrganisationData,
			PageFileUploadCompanyDetails,
		},
		PageFileUploadBrands: {
			PageFileUploadingCompanyDetails,
			PageFileUploadPartnerships,
			PageReviewOrganisationData,
		},
		PageFileUploadPartnerships: {PageFileUploadingCompanyDetails, PageReviewOrganisationData},
		PageReviewOrganisationData: {PageDeclarationWithFullName, PageFileUploadCompanyDetails},
		PageDeclarationWithFullName: {
			PageCompanyDetailsConfirmation,
			PageCompanyDetailsSubmissionFailed,
		},
	},
}

// SchemeMembership covers viewing and removing members of a compliance scheme.
var SchemeMembership = Flow{
	Family:   FamilySchemeMembership,
	Start:    PageLanding,
	Fallback: string(PageSchemeMembers),
	allowed: map[Page][]Page{
		PageLanding:             {PageSchemeMembers},
		PageSchemeMembers:       {PageSchemeMemberDetails},
		PageSchemeMemberDetails: {PageReasonForRemoval},
		PageReasonForRemoval:    {PageTellUsMore, PageConfirmRemoval},
		PageTellUsMore:          {PageConfirmRemoval},
		PageConfirmRemoval:      {PageSchemeMemberRemoved},
	},
}

// NominatedDelegatedPerson covers accepting a delegated person nomination.
var NominatedDelegatedPerson = Flow{
	Family:   FamilyNominatedDelegatedPerson,
	Start:    PageLanding,
	Fallback: string(PageLanding),
	allowed: map[Page][]Page{
		PageLanding:                     {PageNominationTelephoneNumber},
		PageNominationTelephoneNumber:   {PageNominationConfirmPermission},
		PageNominationConfirmPermission: {PageNominationDeclaration},
	},
}
