// Package packaging serves the packaging data (POM) upload and submission pages.
package packaging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

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

// Submissions is the submission service as used by the packaging pages.
type Submissions interface {
	Periods() submission.Periods
	PeriodStatuses(ctx context.Context, t submission.Type, cs *id.ComplianceSchemeID) ([]submission.PeriodStatus, error)
	GetPomSubmission(ctx context.Context, submissionID id.SubmissionID) (*submission.PomSubmission, error)
	Submit(ctx context.Context, submissionID id.SubmissionID, fileID id.FileID, submittedBy string) error
	GetProducerValidationErrors(ctx context.Context, submissionID id.SubmissionID) ([]submission.ProducerValidationError, error)
}

// Uploads streams a posted file to the gateway.
type Uploads interface {
	StreamFile(ctx context.Context, req upload.Request, ms modelstate.ModelState) (id.SubmissionID, error)
}

// Views.
const (
	ViewSubLanding   = "FileUploadSubLanding"
	ViewFileUpload   = "FileUpload"
	ViewUploading    = "FileUploading"
	ViewFailure      = "FileUploadFailure"
	ViewCheckFile    = "FileUploadCheckFileAndSubmit"
	ViewDeclaration  = "FileUploadSubmissionDeclaration"
	ViewConfirmation = "FileUploadSubmissionConfirmation"
	ViewSubmitError  = "FileUploadSubmissionError"
)

const (
	fieldFile       = "file"
	fieldDataPeriod = "data_period"
)

// Handler serves the packaging data pages.
type Handler struct {
	sessions    pages.Sessions
	submissions Submissions
	uploads     Uploads
	forms       *formvalidation.Validator
	logger      *slog.Logger
}

// New creates a packaging Handler.
func New(sessions pages.Sessions, submissions Submissions, uploads Uploads, logger *slog.Logger) *Handler {
	return &Handler{
		sessions:    sessions,
		submissions: submissions,
		uploads:     uploads,
		forms:       formvalidation.New(),
		logger:      logger,
	}
}

// Register mounts the packaging pages. Every page after the sub-landing page is guarded by
// the registration journey.
func (h *Handler) Register(r chi.Router, guard *journey.Guard) {
	flow := journey.Registration
	r.Get(string(journey.PageFileUploadSubLanding), h.handleSubLanding)
	r.Post(string(journey.PageFileUploadSubLanding), h.handleSubLandingPost)

	r.With(guard.Require(flow, journey.PageFileUpload)).Get(string(journey.PageFileUpload), h.handleFileUpload)
	r.With(guard.Require(flow, journey.PageFileUpload)).Post(string(journey.PageFileUpload), h.handleFileUploadPost)
	r.With(guard.Require(flow, journey.PageFileUploading)).Get(string(journey.PageFileUploading), h.handleFileUploading)
	r.With(guard.Require(flow, journey.PageFileUploadFailure)).Get(string(journey.PageFileUploadFailure), h.handleFailure)
	r.With(guard.Require(flow, journey.PageFileUploadFailure)).Get("/file-upload-error-report", h.handleErrorReport)
	r.With(guard.Require(flow, journey.PageFileUploadCheckFileAndSubmit)).Get(string(journey.PageFileUploadCheckFileAndSubmit), h.handleCheckFile)
	r.With(guard.Require(flow, journey.PageFileUploadCheckFileAndSubmit)).Post(string(journey.PageFileUploadCheckFileAndSubmit), h.handleCheckFilePost)
	r.With(guard.Require(flow, journey.PageFileUploadSubmissionDeclaration)).Get(string(journey.PageFileUploadSubmissionDeclaration), h.handleDeclaration)
	r.With(guard.Require(flow, journey.PageFileUploadSubmissionDeclaration)).Post(string(journey.PageFileUploadSubmissionDeclaration), h.handleDeclarationPost)
	r.With(guard.Require(flow, journey.PageFileUploadSubmissionConfirmation)).Get(string(journey.PageFileUploadSubmissionConfirmation), h.handleConfirmation)
	r.With(guard.Require(flow, journey.PageFileUploadSubmissionError)).Get(string(journey.PageFileUploadSubmissionError), h.handleSubmissionError)
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
	s, err := h.sessions.Get(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load session", err)
		return
	}
	s = pages.Enter(s, journey.Registration, pages.Here(journey.PageFileUploadSubLanding, r))
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderSubLanding(w, r, s, modelstate.New())
}

func (h *Handler) renderSubLanding(w http.ResponseWriter, r *http.Request, s session.Session, ms modelstate.ModelState) {
	ctx := r.Context()
	statuses, err := h.submissions.PeriodStatuses(ctx, submission.TypeProducer, s.Registration.OrganisationScope())
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load submission periods", err)
		return
	}
	render.View(w, ViewSubLanding, subLandingModel{
		ComplianceSchemeName: schemeName(s),
		Periods:              statuses,
	}, ms, string(journey.PageLanding))
}

func (h *Handler) handleSubLandingPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.sessions.Get(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load session", err)
		return
	}

	ms := modelstate.New()
	form := subLandingForm{DataPeriod: r.PostFormValue(fieldDataPeriod)}
	if !h.forms.Validate(form, ms) {
		h.renderSubLanding(w, r, s, ms)
		return
	}
	period, ok := h.submissions.Periods().Find(submission.TypeProducer, form.DataPeriod)
	if !ok {
		ms.AddError(fieldDataPeriod, "Select a reporting period")
		h.renderSubLanding(w, r, s, ms)
		return
	}

	statuses, err := h.submissions.PeriodStatuses(ctx, submission.TypeProducer, s.Registration.OrganisationScope())
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load submission periods", err)
		return
	}
	status, found := findStatus(statuses, period.DataPeriod)
	if !found || !status.Status.CanStart() {
		render.Redirect(w, r, string(journey.PageFileUploadSubLanding))
		return
	}

	s.Registration.SubmissionPeriod = period.DataPeriod
	s.Registration.SubmissionDeadline = period.Deadline
	next := nextFromSubLanding(status)
	s, err = pages.Advance(s, journey.Registration, pages.From(s, journey.Registration, journey.PageFileUploadSubLanding), next)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "journey rejected move", err)
		return
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, next.Path)
}

// nextFromSubLanding sends periods with a validated file waiting to check-and-submit and
// every other startable period to the upload page.
func nextFromSubLanding(ps submission.PeriodStatus) journey.Step {
	if ps.Status.HasFileToSubmit() && ps.SubmissionID != nil {
		return journey.Step{
			Page: journey.PageFileUploadCheckFileAndSubmit,
			Path: pages.WithSubmissionID(string(journey.PageFileUploadCheckFileAndSubmit), *ps.SubmissionID),
		}
	}
	if ps.SubmissionID != nil {
		return journey.Step{
			Page: journey.PageFileUpload,
			Path: pages.WithSubmissionID(string(journey.PageFileUpload), *ps.SubmissionID),
		}
	}
	return journey.At(journey.PageFileUpload)
}

func findStatus(statuses []submission.PeriodStatus, dataPeriod string) (submission.PeriodStatus, bool) {
	for _, ps := range statuses {
		if ps.Period.DataPeriod == dataPeriod {
			return ps, true
		}
	}
	return submission.PeriodStatus{}, false
}

type fileUploadModel struct {
	SubmissionPeriod     string    `json:"submissionPeriod"`
	SubmissionDeadline   time.Time `json:"submissionDeadline"`
	ComplianceSchemeName string    `json:"complianceSchemeName,omitempty"`
}

func (h *Handler) renderFileUpload(w http.ResponseWriter, s session.Session, ms modelstate.ModelState) {
	render.View(w, ViewFileUpload, fileUploadModel{
		SubmissionPeriod:     s.Registration.SubmissionPeriod,
		SubmissionDeadline:   s.Registration.SubmissionDeadline,
		ComplianceSchemeName: schemeName(s),
	}, ms, pages.BackLink(s, journey.Registration, journey.PageFileUpload, string(journey.PageFileUploadSubLanding)))
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.sessions.Get(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load session", err)
		return
	}
	h.renderFileUpload(w, s, modelstate.New())
}

func (h *Handler) handleFileUploadPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.sessions.Get(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load session", err)
		return
	}

	md := upload.Metadata{
		SubmissionType:     submission.TypeProducer,
		SubmissionPeriod:   s.Registration.SubmissionPeriod,
		ComplianceSchemeID: s.Registration.OrganisationScope(),
	}
	if subID, ok := pages.SubmissionID(r); ok {
		md.SubmissionID = &subID
	}

	ms := modelstate.New()
	subID, err := h.uploads.StreamFile(ctx, upload.Request{
		ContentType: r.Header.Get("Content-Type"),
		Body:        r.Body,
		Field:       fieldFile,
		Metadata:    md,
	}, ms)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to upload packaging file", err,
			"submission_period", md.SubmissionPeriod)
		return
	}
	if !ms.IsValid() {
		h.renderFileUpload(w, s, ms)
		return
	}

	next := journey.Step{
		Page: journey.PageFileUploading,
		Path: pages.WithSubmissionID(string(journey.PageFileUploading), subID),
	}
	h.advanceAndRedirect(w, r, s, pages.Here(journey.PageFileUpload, r), next)
}

type uploadingModel struct {
	SubmissionID id.SubmissionID `json:"submissionId"`
}

func (h *Handler) handleFileUploading(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if sub.Processing() {
		render.View(w, ViewUploading, uploadingModel{SubmissionID: sub.ID}, nil, "")
		return
	}

	next := journey.Step{
		Page: journey.PageFileUploadCheckFileAndSubmit,
		Path: pages.WithSubmissionID(string(journey.PageFileUploadCheckFileAndSubmit), sub.ID),
	}
	if len(sub.Errors) > 0 || !sub.ValidationPass {
		next = journey.Step{
			Page: journey.PageFileUploadFailure,
			Path: pages.WithSubmissionID(string(journey.PageFileUploadFailure), sub.ID),
		}
		h.logger.InfoContext(ctx, "packaging file failed validation",
			"submission_id", sub.ID,
			"errors", len(sub.Errors),
		)
	}
	h.advanceAndRedirect(w, r, s, pages.Here(journey.PageFileUploading, r), next)
}

type failureModel struct {
	SubmissionID   id.SubmissionID `json:"submissionId"`
	FileName       string          `json:"fileName"`
	Errors         []string        `json:"errors"`
	ErrorReportURL string          `json:"errorReportUrl"`
}

func (h *Handler) handleFailure(w http.ResponseWriter, r *http.Request) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	render.View(w, ViewFailure, failureModel{
		SubmissionID:   sub.ID,
		FileName:       sub.PomFileName,
		Errors:         sub.Errors,
		ErrorReportURL: pages.WithSubmissionID("/file-upload-error-report", sub.ID),
	}, nil, pages.BackLink(s, journey.Registration, journey.PageFileUpload, string(journey.PageFileUploadSubLanding)))
}

func (h *Handler) handleErrorReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, _, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	errs, err := h.submissions.GetProducerValidationErrors(ctx, sub.ID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load validation errors", err, "submission_id", sub.ID)
		return
	}
	err = render.Download(w, submission.ReportFileName(sub.PomFileName), func(out io.Writer) error {
		return submission.WriteErrorReport(out, errs)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to write error report",
			"submission_id", sub.ID,
			"error", err,
		)
	}
}

type checkFileModel struct {
	SubmissionID          id.SubmissionID `json:"submissionId"`
	SubmissionPeriod      string          `json:"submissionPeriod"`
	LastValidFileName     string          `json:"lastValidFileName,omitempty"`
	LastValidFileUploaded *time.Time      `json:"lastValidFileUploadedAt,omitempty"`
	LastSubmittedFileName string          `json:"lastSubmittedFileName,omitempty"`
	LastSubmittedAt       *time.Time      `json:"lastSubmittedAt,omitempty"`
	HasWarnings           bool            `json:"hasWarnings"`
	CanSubmit             bool            `json:"canSubmit"`
}

// canSubmit reports whether the user may send data to the regulator.
func canSubmit(ctx context.Context) bool {
	u, ok := identity.FromContext(ctx)
	return ok && identity.EprSelectSchemePolicy.Allow(u)
}

func (h *Handler) renderCheckFile(w http.ResponseWriter, r *http.Request, sub *submission.PomSubmission, ms modelstate.ModelState) {
	m := checkFileModel{
		SubmissionID:     sub.ID,
		SubmissionPeriod: sub.SubmissionPeriod,
		HasWarnings:      sub.HasWarnings,
		CanSubmit:        canSubmit(r.Context()),
	}
	if f := sub.LastUploadedValidFile; f != nil {
		m.LastValidFileName = f.FileName
		m.LastValidFileUploaded = &f.FileUploadDateTime
	}
	if f := sub.LastSubmittedFile; f != nil {
		m.LastSubmittedFileName = f.FileName
		m.LastSubmittedAt = &f.SubmittedDateTime
	}
	render.View(w, ViewCheckFile, m, ms, string(journey.PageFileUploadSubLanding))
}

func (h *Handler) handleCheckFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if sub.LastUploadedValidFile == nil {
		render.Redirect(w, r, string(journey.PageFileUploadSubLanding))
		return
	}
	s.Registration.SubmissionID = sub.ID
	s.Registration.FileID = sub.LastUploadedValidFile.FileID
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderCheckFile(w, r, sub, nil)
}

func (h *Handler) handleCheckFilePost(w http.ResponseWriter, r *http.Request) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	if !canSubmit(r.Context()) {
		ms := modelstate.New()
		ms.AddError("", "Only an approved or delegated person can submit data")
		h.renderCheckFile(w, r, sub, ms)
		return
	}
	next := journey.Step{
		Page: journey.PageFileUploadSubmissionDeclaration,
		Path: pages.WithSubmissionID(string(journey.PageFileUploadSubmissionDeclaration), sub.ID),
	}
	h.advanceAndRedirect(w, r, s, pages.Here(journey.PageFileUploadCheckFileAndSubmit, r), next)
}

type declarationModel struct {
	SubmissionID     id.SubmissionID `json:"submissionId"`
	OrganisationName string          `json:"organisationName"`
}

func (h *Handler) handleDeclaration(w http.ResponseWriter, r *http.Request) {
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	render.View(w, ViewDeclaration, declarationModel{
		SubmissionID:     sub.ID,
		OrganisationName: organisationName(r.Context()),
	}, nil, pages.BackLink(s, journey.Registration, journey.PageFileUploadSubmissionDeclaration, string(journey.PageFileUploadSubLanding)))
}

func (h *Handler) handleDeclarationPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, s, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	var fileID id.FileID
	if s.Registration.SubmissionID == sub.ID {
		fileID = s.Registration.FileID
	}
	if fileID.IsNil() && sub.LastUploadedValidFile != nil {
		fileID = sub.LastUploadedValidFile.FileID
	}

	here := pages.Here(journey.PageFileUploadSubmissionDeclaration, r)
	next := journey.Step{
		Page: journey.PageFileUploadSubmissionConfirmation,
		Path: pages.WithSubmissionID(string(journey.PageFileUploadSubmissionConfirmation), sub.ID),
	}
	if err := h.submissions.Submit(ctx, sub.ID, fileID, submittedBy(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "packaging submission failed",
			"submission_id", sub.ID,
			"file_id", fileID,
			"error", err,
		)
		next = journey.Step{
			Page: journey.PageFileUploadSubmissionError,
			Path: pages.WithSubmissionID(string(journey.PageFileUploadSubmissionError), sub.ID),
		}
	}
	h.advanceAndRedirect(w, r, s, here, next)
}

type confirmationModel struct {
	SubmissionID     id.SubmissionID `json:"submissionId"`
	OrganisationName string          `json:"organisationName"`
	FileName         string          `json:"fileName,omitempty"`
	SubmittedAt      *time.Time      `json:"submittedAt,omitempty"`
}

func (h *Handler) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	sub, _, ok := h.loadSubmission(w, r)
	if !ok {
		return
	}
	m := confirmationModel{SubmissionID: sub.ID, OrganisationName: organisationName(r.Context())}
	if f := sub.LastSubmittedFile; f != nil {
		m.FileName = f.FileName
		m.SubmittedAt = &f.SubmittedDateTime
	}
	render.View(w, ViewConfirmation, m, nil, "")
}

func (h *Handler) handleSubmissionError(w http.ResponseWriter, r *http.Request) {
	subID, _ := pages.SubmissionID(r)
	render.View(w, ViewSubmitError, uploadingModel{SubmissionID: subID}, nil, string(journey.PageFileUploadSubLanding))
}

// loadSubmission loads the session and the submission named by the query. It writes the
// response itself when either cannot be loaded.
func (h *Handler) loadSubmission(w http.ResponseWriter, r *http.Request) (*submission.PomSubmission, session.Session, bool) {
	ctx := r.Context()
	s, err := h.sessions.Get(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load session", err)
		return nil, s, false
	}
	subID, ok := pages.SubmissionID(r)
	if !ok {
		render.Redirect(w, r, string(journey.PageFileUploadSubLanding))
		return nil, s, false
	}
	sub, err := h.submissions.GetPomSubmission(ctx, subID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load submission", err, "submission_id", subID)
		return nil, s, false
	}
	if sub == nil {
		render.Redirect(w, r, string(journey.PageFileUploadSubLanding))
		return nil, s, false
	}
	return sub, s, true
}

func (h *Handler) advanceAndRedirect(w http.ResponseWriter, r *http.Request, s session.Session, from, to journey.Step) {
	pages.Move(w, r, h.sessions, h.logger, journey.Registration, s, from, to)
}

func schemeName(s session.Session) string {
	if cs := s.Registration.SelectedComplianceScheme; cs != nil {
		return cs.Name
	}
	return ""
}

func submittedBy(ctx context.Context) string {
	u, _ := identity.FromContext(ctx)
	return u.FullName()
}

func organisationName(ctx context.Context) string {
	u, ok := identity.FromContext(ctx)
	if !ok {
		return ""
	}
	org, _ := u.Primary()
	return org.Name
}
