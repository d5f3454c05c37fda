// Package registration serves the organisation details upload pages: company details,
// brands and partnerships files, review and the named declaration.
package registration

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"schemereg/internal/identity"
	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/submission"
	"schemereg/internal/upload"
	"schemereg/internal/web/pages"
	"schemereg/internal/web/render"
	id "schemereg/pkg/domain"
	"schemereg/pkg/platform/formvalidation"
	"schemereg/pkg/platform/modelstate"
)

// Submissions is the submission service as used by the registration pages.
type Submissions interface {
	Periods() submission.Periods
	PeriodStatuses(ctx context.Context, t submission.Type, cs *id.ComplianceSchemeID) ([]submission.PeriodStatus, error)
	GetRegistrationSubmission(ctx context.Context, submissionID id.SubmissionID) (*submission.RegistrationSubmission, error)
	Submit(ctx context.Context, submissionID id.SubmissionID, fileID id.FileID, submittedBy string) error
}

// Uploads streams a posted file to the gateway.
type Uploads interface {
	StreamFile(ctx context.Context, req upload.Request, ms modelstate.ModelState) (id.SubmissionID, error)
}

// Views.
const (
	ViewSubLanding       = "CompanyDetailsSubLanding"
	ViewCompanyDetails   = "FileUploadCompanyDetails"
	ViewUploading        = "FileUploadingCompanyDetails"
	ViewBrands           = "FileUploadBrands"
	ViewPartnerships     = "FileUploadPartnerships"
	ViewReview           = "ReviewOrganisationData"
	ViewDeclaration      = "DeclarationWithFullName"
	ViewConfirmation     = "CompanyDetailsConfirmation"
	ViewSubmissionFailed = "CompanyDetailsSubmissionFailed"
)

const (
	fieldFile       = "file"
	fieldDataPeriod = "data_period"
	fieldFullName   = "full_name"
)

// Handler serves the organisation details pages.
type Handler struct {
	sessions    pages.Sessions
	submissions Submissions
	uploads     Uploads
	forms       *formvalidation.Validator
	logger      *slog.Logger
}

// New creates a registration Handler.
func New(sessions pages.Sessions, submissions Submissions, uploads Uploads, logger *slog.Logger) *Handler {
	return &Handler{
		sessions:    sessions,
		submissions: submissions,
		uploads:     uploads,
		forms:       formvalidation.New(),
		logger:      logger,
	}
}

// Register mounts the organisation details pages.
func (h *Handler) Register(r chi.Router, guard *journey.Guard) {
	flow := journey.Registration
	r.Get(string(journey.PageCompanyDetailsSubLanding), h.handleSubLanding)
	r.Post(string(journey.PageCompanyDetailsSubLanding), h.handleSubLandingPost)

	r.With(guard.Require(flow, journey.PageFileUploadCompanyDetails)).Get(string(journey.PageFileUploadCompanyDetails), h.handleCompanyDetails)
	r.With(guard.Require(flow, journey.PageFileUploadCompanyDetails)).Post(string(journey.PageFileUploadCompanyDetails), h.handleCompanyDetailsPost)
	r.With(guard.Require(flow, journey.PageFileUploadingCompanyDetails)).Get(string(journey.PageFileUploadingCompanyDetails), h.handleUploading)
	r.With(guard.Require(flow, journey.PageFileUploadBrands)).Get(string(journey.PageFileUploadBrands), h.handleBrands)
	r.With(guard.Require(flow, journey.PageFileUploadBrands)).Post(string(journey.PageFileUploadBrands), h.handleBrandsPost)
	r.With(guard.Require(flow, journey.PageFileUploadPartnerships)).Get(string(journey.PageFileUploadPartnerships), h.handlePartnerships)
	r.With(guard.Require(flow, journey.PageFileUploadPartnerships)).Post(string(journey.PageFileUploadPartnerships), h.handlePartnershipsPost)
	r.With(guard.Require(flow, journey.PageReviewOrganisationData)).Get(string(journey.PageReviewOrganisationData), h.handleReview)
	r.With(guard.Require(flow, journey.PageReviewOrganisationData)).Post(string(journey.PageReviewOrganisationData), h.handleReviewPost)
	r.With(guard.Require(flow, journey.PageDeclarationWithFullName)).Get(string(journey.PageDeclarationWithFullName), h.handleDeclaration)
	r.With(guard.Require(flow, journey.PageDeclarationWithFullName)).Post(string(journey.PageDeclarationWithFullName), h.handleDeclarationPost)
	r.With(guard.Require(flow, journey.PageCompanyDetailsConfirmation)).Get(string(journey.PageCompanyDetailsConfirmation), h.handleConfirmation)
	r.With(guard.Require(flow, journey.PageCompanyDetailsSubmissionFailed)).Get(string(journey.PageCompanyDetailsSubmissionFailed), h.handleSubmissionFailed)
}

type subLandingModel struct {
	ComplianceSchemeName string                    `json:"complianceSchemeName,omitempty"`
	Periods              []submission.PeriodStatus `json:"periods"`
}

type subLandingForm struct {
	DataPeriod string `form:"data_period" validate:"required" errmsg:"Select a reporting period"`
}

func (h *Handler) handleSubLanding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	s = pages.Enter(s, journey.Registration, pages.Here(journey.PageCompanyDetailsSubLanding, r))
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderSubLanding(w, r, s, nil)
}

func (h *Handler) renderSubLanding(w http.ResponseWriter, r *http.Request, s session.Session, ms modelstate.ModelState) {
	ctx := r.Context()
	statuses, err := h.submissions.PeriodStatuses(ctx, submission.TypeRegistration, s.Registration.OrganisationScope())
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load registration periods", err)
		return
	}
	render.View(w, ViewSubLanding, subLandingModel{
		ComplianceSchemeName: schemeName(s),
		Periods:              statuses,
	}, ms, string(journey.PageLanding))
}

func (h *Handler) handleSubLandingPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}

	ms := modelstate.New()
	form := subLandingForm{DataPeriod: r.PostFormValue(fieldDataPeriod)}
	if !h.forms.Validate(form, ms) {
		h.renderSubLanding(w, r, s, ms)
		return
	}
	period, found := h.submissions.Periods().Find(submission.TypeRegistration, form.DataPeriod)
	if !found {
		ms.AddError(fieldDataPeriod, "Select a reporting period")
		h.renderSubLanding(w, r, s, ms)
		return
	}

	statuses, err := h.submissions.PeriodStatuses(ctx, submission.TypeRegistration, s.Registration.OrganisationScope())
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load registration periods", err)
		return
	}
	status, found := findStatus(statuses, period.DataPeriod)
	if !found || !status.Status.CanStart() {
		render.Redirect(w, r, string(journey.PageCompanyDetailsSubLanding))
		return
	}

	s.Registration.SubmissionPeriod = period.DataPeriod
	s.Registration.SubmissionDeadline = period.Deadline
	s.Registration.IsUpdateJourney = status.SubmissionID != nil
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s,
		pages.From(s, journey.Registration, journey.PageCompanyDetailsSubLanding), nextFromSubLanding(status))
}

func findStatus(statuses []submission.PeriodStatus, dataPeriod string) (submission.PeriodStatus, bool) {
	for _, ps := range statuses {
		if ps.Period.DataPeriod == dataPeriod {
			return ps, true
		}
	}
	return submission.PeriodStatus{}, false
}

// nextFromSubLanding sends periods with validated files waiting to the review page and every
// other startable period to the company details upload.
func nextFromSubLanding(ps submission.PeriodStatus) journey.Step {
	if ps.SubmissionID == nil {
		return journey.At(journey.PageFileUploadCompanyDetails)
	}
	if ps.Status.HasFileToSubmit() {
		return withSubmission(journey.PageReviewOrganisationData, *ps.SubmissionID)
	}
	return withSubmission(journey.PageFileUploadCompanyDetails, *ps.SubmissionID)
}

type uploadModel struct {
	SubmissionPeriod     string          `json:"submissionPeriod"`
	SubmissionDeadline   time.Time       `json:"submissionDeadline"`
	ComplianceSchemeName string          `json:"complianceSchemeName,omitempty"`
	IsUpdateJourney      bool            `json:"isUpdateJourney"`
	SubmissionID         id.SubmissionID `json:"submissionId,omitzero"`
}

func (h *Handler) renderUpload(w http.ResponseWriter, s session.Session, view string, page journey.Page, subID id.SubmissionID, ms modelstate.ModelState) {
	render.View(w, view, uploadModel{
		SubmissionPeriod:     s.Registration.SubmissionPeriod,
		SubmissionDeadline:   s.Registration.SubmissionDeadline,
		ComplianceSchemeName: schemeName(s),
		IsUpdateJourney:      s.Registration.IsUpdateJourney,
		SubmissionID:         subID,
	}, ms, pages.BackLink(s, journey.Registration, page, string(journey.PageCompanyDetailsSubLanding)))
}

// handleCompanyDetails shows the company details upload. When a submission is named, the
// validation errors of its last upload are shown against the file field.
func (h *Handler) handleCompanyDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	ms := modelstate.New()
	subID, named := pages.SubmissionID(r)
	if named {
		sub, err := h.submissions.GetRegistrationSubmission(ctx, subID)
		if err != nil {
			render.Fail(ctx, w, r, h.logger, "failed to load registration submission", err, "submission_id", subID)
			return
		}
		if sub != nil {
			for _, code := range sub.Errors {
				ms.AddError(fieldFile, code)
			}
		}
	}
	h.renderUpload(w, s, ViewCompanyDetails, journey.PageFileUploadCompanyDetails, subID, ms)
}

func (h *Handler) handleCompanyDetailsPost(w http.ResponseWriter, r *http.Request) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	md := h.metadata(s, submission.SubTypeCompanyDetails)
	if original, named := pages.SubmissionID(r); named {
		md.OriginalSubmissionID = &original
	}
	h.stream(w, r, s, md, ViewCompanyDetails, journey.PageFileUploadCompanyDetails)
}

func (h *Handler) handleBrands(w http.ResponseWriter, r *http.Request) {
	h.showSupplementary(w, r, ViewBrands, journey.PageFileUploadBrands)
}

func (h *Handler) handleBrandsPost(w http.ResponseWriter, r *http.Request) {
	h.postSupplementary(w, r, submission.SubTypeBrands, ViewBrands, journey.PageFileUploadBrands)
}

func (h *Handler) handlePartnerships(w http.ResponseWriter, r *http.Request) {
	h.showSupplementary(w, r, ViewPartnerships, journey.PageFileUploadPartnerships)
}

func (h *Handler) handlePartnershipsPost(w http.ResponseWriter, r *http.Request) {
	h.postSupplementary(w, r, submission.SubTypePartnerships, ViewPartnerships, journey.PageFileUploadPartnerships)
}

// showSupplementary renders the brands or partnerships upload of an existing submission.
func (h *Handler) showSupplementary(w http.ResponseWriter, r *http.Request, view string, page journey.Page) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	h.renderUpload(w, s, view, page, sub.ID, nil)
}

func (h *Handler) postSupplementary(w http.ResponseWriter, r *http.Request, subType submission.SubType, view string, page journey.Page) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	md := h.metadata(s, subType)
	md.SubmissionID = &sub.ID
	h.stream(w, r, s, md, view, page)
}

// metadata describes an organisation details file of the session's period. The period's
// registration set is minted on first use and kept until the set is submitted.
func (h *Handler) metadata(s session.Session, subType submission.SubType) upload.Metadata {
	setID, _ := s.Registration.RegistrationSetFor(s.Registration.SubmissionPeriod)
	regSet := id.RegistrationSetID(setID)
	return upload.Metadata{
		SubmissionType:     submission.TypeRegistration,
		SubmissionSubType:  subType,
		SubmissionPeriod:   s.Registration.SubmissionPeriod,
		ComplianceSchemeID: s.Registration.OrganisationScope(),
		RegistrationSetID:  &regSet,
	}
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, s session.Session, md upload.Metadata, view string, page journey.Page) {
	ctx := r.Context()
	ms := modelstate.New()
	subID, err := h.uploads.StreamFile(ctx, upload.Request{
		ContentType: r.Header.Get("Content-Type"),
		Body:        r.Body,
		Field:       fieldFile,
		Metadata:    md,
	}, ms)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to upload organisation details file", err,
			"sub_type", md.SubmissionSubType,
			"submission_period", md.SubmissionPeriod,
		)
		return
	}
	if !ms.IsValid() {
		current := id.SubmissionID{}
		if md.SubmissionID != nil {
			current = *md.SubmissionID
		}
		h.renderUpload(w, s, view, page, current, ms)
		return
	}

	s.Registration = s.Registration.WithRegistrationSet(md.SubmissionPeriod, uuid.UUID(*md.RegistrationSetID))
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s,
		pages.Here(page, r), withSubmission(journey.PageFileUploadingCompanyDetails, subID))
}

type uploadingModel struct {
	SubmissionID id.SubmissionID `json:"submissionId"`
}

// handleUploading waits for validation, then routes to the next file the set still needs,
// back to company details on errors, or to review when the set is complete.
func (h *Handler) handleUploading(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if sub.Processing() {
		render.View(w, ViewUploading, uploadingModel{SubmissionID: sub.ID}, nil, "")
		return
	}

	var next journey.Step
	switch {
	case len(sub.Errors) > 0:
		h.logger.InfoContext(ctx, "organisation details file failed validation",
			"submission_id", sub.ID,
			"errors", len(sub.Errors),
		)
		next = withSubmission(journey.PageFileUploadCompanyDetails, sub.ID)
	default:
		switch sub.NextUploadSubType() {
		case submission.SubTypeCompanyDetails:
			next = withSubmission(journey.PageFileUploadCompanyDetails, sub.ID)
		case submission.SubTypeBrands:
			next = withSubmission(journey.PageFileUploadBrands, sub.ID)
		case submission.SubTypePartnerships:
			next = withSubmission(journey.PageFileUploadPartnerships, sub.ID)
		default:
			next = withSubmission(journey.PageReviewOrganisationData, sub.ID)
		}
	}
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s, pages.Here(journey.PageFileUploadingCompanyDetails, r), next)
}

type reviewModel struct {
	SubmissionID         id.SubmissionID `json:"submissionId"`
	SubmissionPeriod     string          `json:"submissionPeriod"`
	CompanyDetailsFile   string          `json:"companyDetailsFileName"`
	BrandsFile           string          `json:"brandsFileName,omitempty"`
	PartnershipsFile     string          `json:"partnershipsFileName,omitempty"`
	UploadedAt           *time.Time      `json:"uploadedAt,omitempty"`
	LastSubmittedAt      *time.Time      `json:"lastSubmittedAt,omitempty"`
	ComplianceSchemeName string          `json:"complianceSchemeName,omitempty"`
	CanSubmit            bool            `json:"canSubmit"`
}

func (h *Handler) renderReview(w http.ResponseWriter, r *http.Request, s session.Session, sub *submission.RegistrationSubmission, ms modelstate.ModelState) {
	m := reviewModel{
		SubmissionID:         sub.ID,
		SubmissionPeriod:     sub.SubmissionPeriod,
		ComplianceSchemeName: schemeName(s),
		CanSubmit:            canSubmit(r.Context()),
	}
	if f := sub.LastUploadedValidFiles; f != nil {
		m.CompanyDetailsFile = f.CompanyDetailsFileName
		m.BrandsFile = f.BrandsFileName
		m.PartnershipsFile = f.PartnershipsFileName
		m.UploadedAt = f.CompanyDetailsUploadedAt
	}
	if f := sub.LastSubmittedFiles; f != nil {
		m.LastSubmittedAt = f.SubmittedDateTime
	}
	render.View(w, ViewReview, m, ms, string(journey.PageCompanyDetailsSubLanding))
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if sub.LastUploadedValidFiles == nil {
		render.Redirect(w, r, string(journey.PageCompanyDetailsSubLanding))
		return
	}
	s.Registration.SubmissionID = sub.ID
	s.Registration.FileID = sub.LastUploadedValidFiles.CompanyDetailsFileID
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderReview(w, r, s, sub, nil)
}

func (h *Handler) handleReviewPost(w http.ResponseWriter, r *http.Request) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if !canSubmit(r.Context()) {
		ms := modelstate.New()
		ms.AddError("", "Only an approved or delegated person can submit data")
		h.renderReview(w, r, s, sub, ms)
		return
	}
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s,
		pages.Here(journey.PageReviewOrganisationData, r), withSubmission(journey.PageDeclarationWithFullName, sub.ID))
}

type declarationModel struct {
	SubmissionID     id.SubmissionID `json:"submissionId"`
	OrganisationName string          `json:"organisationName"`
	FullName         string          `json:"fullName,omitempty"`
}

type declarationForm struct {
	FullName string `form:"full_name" validate:"required,max=200" errmsg:"Enter your full name" errmsg_max:"Full name must be 200 characters or less"`
}

func (h *Handler) handleDeclaration(w http.ResponseWriter, r *http.Request) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	h.renderDeclaration(w, r, s, sub.ID, "", nil)
}

func (h *Handler) renderDeclaration(w http.ResponseWriter, r *http.Request, s session.Session, subID id.SubmissionID, fullName string, ms modelstate.ModelState) {
	render.View(w, ViewDeclaration, declarationModel{
		SubmissionID:     subID,
		OrganisationName: organisationName(r.Context()),
		FullName:         fullName,
	}, ms, pages.BackLink(s, journey.Registration, journey.PageDeclarationWithFullName, string(journey.PageCompanyDetailsSubLanding)))
}

// handleDeclarationPost submits the registration set under the declared name. A successful
// submission closes the period's registration set so the next upload starts a new one.
func (h *Handler) handleDeclarationPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	form := declarationForm{FullName: r.PostFormValue(fieldFullName)}
	ms := modelstate.New()
	if !h.forms.Validate(form, ms) {
		h.renderDeclaration(w, r, s, sub.ID, form.FullName, ms)
		return
	}

	var fileID id.FileID
	if s.Registration.SubmissionID == sub.ID {
		fileID = s.Registration.FileID
	}
	if fileID.IsNil() && sub.LastUploadedValidFiles != nil {
		fileID = sub.LastUploadedValidFiles.CompanyDetailsFileID
	}
	here := pages.Here(journey.PageDeclarationWithFullName, r)
	if err := h.submissions.Submit(ctx, sub.ID, fileID, form.FullName); err != nil {
		h.logger.ErrorContext(ctx, "registration submission failed",
			"submission_id", sub.ID,
			"file_id", fileID,
			"error", err,
		)
		pages.Move(w, r, h.sessions, h.logger, journey.Registration, s, here,
			withSubmission(journey.PageCompanyDetailsSubmissionFailed, sub.ID))
		return
	}
	s.Registration = s.Registration.WithoutRegistrationSet(s.Registration.SubmissionPeriod)
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s, here,
		withSubmission(journey.PageCompanyDetailsConfirmation, sub.ID))
}

type confirmationModel struct {
	SubmissionID     id.SubmissionID `json:"submissionId"`
	OrganisationName string          `json:"organisationName"`
	SubmittedAt      *time.Time      `json:"submittedAt,omitempty"`
}

func (h *Handler) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	sub, _, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	m := confirmationModel{SubmissionID: sub.ID, OrganisationName: organisationName(r.Context())}
	if f := sub.LastSubmittedFiles; f != nil {
		m.SubmittedAt = f.SubmittedDateTime
	}
	render.View(w, ViewConfirmation, m, nil, "")
}

func (h *Handler) handleSubmissionFailed(w http.ResponseWriter, r *http.Request) {
	subID, _ := pages.SubmissionID(r)
	render.View(w, ViewSubmissionFailed, uploadingModel{SubmissionID: subID}, nil, string(journey.PageCompanyDetailsSubLanding))
}

// loadSubmission loads the session and the registration submission named by the query. It
// writes the response itself when either cannot be loaded.
func (h *Handler) loadSubmission(w http.ResponseWriter, r *http.Request) (*submission.RegistrationSubmission, session.Session, bool) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return nil, s, false
	}
	subID, named := pages.SubmissionID(r)
	if !named {
		render.Redirect(w, r, string(journey.PageCompanyDetailsSubLanding))
		return nil, s, false
	}
	sub, err := h.submissions.GetRegistrationSubmission(ctx, subID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load registration submission", err, "submission_id", subID)
		return nil, s, false
	}
	if sub == nil {
		render.Redirect(w, r, string(journey.PageCompanyDetailsSubLanding))
		return nil, s, false
	}
	return sub, s, true
}

func withSubmission(page journey.Page, subID id.SubmissionID) journey.Step {
	return journey.Step{Page: page, Path: pages.WithSubmissionID(string(page), subID)}
}

func canSubmit(ctx context.Context) bool {
	u, ok := identity.FromContext(ctx)
	return ok && identity.EprSelectSchemePolicy.Allow(u)
}

func schemeName(s session.Session) string {
	if cs := s.Registration.SelectedComplianceScheme; cs != nil {
		return cs.Name
	}
	return ""
}

func organisationName(ctx context.Context) string {
	u, ok := identity.FromContext(ctx)
	if !ok {
		return ""
	}
	org, _ := u.Primary()
	return org.Name
}
