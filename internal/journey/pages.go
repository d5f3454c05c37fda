package journey

// Page identifies a workflow page by its route pattern. Steps record the concrete path.
type Page string

const (
	PageLanding Page = "/"

	// Packaging data (POM) upload
	PageFileUploadSubLanding             Page = "/file-upload-sub-landing"
	PageFileUpload                       Page = "/file-upload"
	PageFileUploading                    Page = "/file-uploading"
	PageFileUploadFailure                Page = "/file-upload-failure"
	PageFileUploadCheckFileAndSubmit     Page = "/file-upload-check-file-and-submit"
	PageFileUploadSubmissionDeclaration  Page = "/file-upload-submission-declaration"
	PageFileUploadSubmissionConfirmation Page = "/file-upload-submission-confirmation"
	PageFileUploadSubmissionError        Page = "/file-upload-submission-error"

	// Registration (organisation details) upload
	PageCompanyDetailsSubLanding       Page = "/file-upload-company-details-sub-landing"
	PageFileUploadCompanyDetails       Page = "/file-upload-company-details"
	PageFileUploadingCompanyDetails    Page = "/file-uploading-company-details"
	PageFileUploadBrands               Page = "/file-upload-brands"
	PageFileUploadPartnerships         Page = "/file-upload-partnerships"
	PageReviewOrganisationData         Page = "/review-organisation-data"
	PageDeclarationWithFullName        Page = "/declaration-with-full-name"
	PageCompanyDetailsConfirmation     Page = "/company-details-confirmation"
	PageCompanyDetailsSubmissionFailed Page = "/company-details-submission-failed"

	// Scheme membership
	PageSchemeMembers       Page = "/scheme-members"
	PageSchemeMemberDetails Page = "/scheme-members/{id}"
	PageReasonForRemoval    Page = "/scheme-members/{id}/reason-for-removal"
	PageTellUsMore          Page = "/scheme-members/{id}/tell-us-more"
	PageConfirmRemoval      Page = "/scheme-members/{id}/confirm-removal"
	PageSchemeMemberRemoved Page = "/scheme-members/{id}/removed"

	// Nominated delegated person
	PageNominationTelephoneNumber   Page = "/nominated-delegated-person/{enrolmentId}/telephone-number"
	PageNominationConfirmPermission Page = "/nominated-delegated-person/{enrolmentId}/confirm-permission-submit-data"
	PageNominationDeclaration       Page = "/nominated-delegated-person/{enrolmentId}/declaration"

	PageError Page = "/error"
)

// Step is one visited page together with the concrete path (ids and query substituted)
// used for redirects and back links.
type Step struct {
	Page Page   `json:"page"`
	Path string `json:"path"`
}

// At returns a step for p whose path is the route pattern itself. Only valid for pages
// without route parameters.
func At(p Page) Step {
	return Step{Page: p, Path: string(p)}
}
