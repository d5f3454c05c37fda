// Package membership serves the compliance scheme member pages: the member list, member
// details and the removal flow.
package membership

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"schemereg/internal/accounts"
	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/web/pages"
	"schemereg/internal/web/render"
	id "schemereg/pkg/domain"
	"schemereg/pkg/platform/formvalidation"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/requestcontext"
)

// Schemes is the compliance scheme service as used by the membership pages.
type Schemes interface {
	GetSchemeMembers(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, q accounts.SchemeMembersQuery) (*accounts.SchemeMembers, error)
	GetSchemeMemberDetails(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) (*accounts.SchemeMemberDetails, error)
	GetReasonsForRemoval(ctx context.Context) ([]accounts.ReasonForRemoval, error)
	RemoveSchemeMember(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, selectedSchemeID id.SelectedSchemeID, reasonCode, tellUsMore string) (*accounts.RemovedMember, error)
}

// Views.
const (
	ViewMembers       = "SchemeMembers"
	ViewMemberDetails = "SchemeMemberDetails"
	ViewReason        = "ReasonForRemoval"
	ViewTellUsMore    = "TellUsMore"
	ViewConfirm       = "ConfirmRemoval"
	ViewRemoved       = "SchemeMemberRemoved"
)

const (
	fieldReason     = "reason_code"
	fieldTellUsMore = "tell_us_more"

	membersPageSize = 50
)

// Handler serves the scheme membership pages.
type Handler struct {
	sessions pages.Sessions
	schemes  Schemes
	forms    *formvalidation.Validator
	logger   *slog.Logger
}

// New creates a membership Handler.
func New(sessions pages.Sessions, schemes Schemes, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		schemes:  schemes,
		forms:    formvalidation.New(),
		logger:   logger,
	}
}

// Register mounts the membership pages. Member details are reached by link from the member
// list, so they are guarded on the list.
func (h *Handler) Register(r chi.Router, guard *journey.Guard) {
	flow := journey.SchemeMembership
	r.Get(string(journey.PageSchemeMembers), h.handleMembers)
	r.With(guard.Require(flow, journey.PageSchemeMembers)).Get(string(journey.PageSchemeMemberDetails), h.handleDetails)
	r.With(guard.Require(flow, journey.PageSchemeMemberDetails)).Get(string(journey.PageReasonForRemoval), h.handleReason)
	r.With(guard.Require(flow, journey.PageReasonForRemoval)).Post(string(journey.PageReasonForRemoval), h.handleReasonPost)
	r.With(guard.Require(flow, journey.PageTellUsMore)).Get(string(journey.PageTellUsMore), h.handleTellUsMore)
	r.With(guard.Require(flow, journey.PageTellUsMore)).Post(string(journey.PageTellUsMore), h.handleTellUsMorePost)
	r.With(guard.Require(flow, journey.PageConfirmRemoval)).Get(string(journey.PageConfirmRemoval), h.handleConfirm)
	r.With(guard.Require(flow, journey.PageConfirmRemoval)).Post(string(journey.PageConfirmRemoval), h.handleConfirmPost)
	r.With(guard.Require(flow, journey.PageSchemeMemberRemoved)).Get(string(journey.PageSchemeMemberRemoved), h.handleRemoved)
}

// load returns the session and the scheme the user is acting for. Users who have not
// selected a scheme are sent back to the landing page.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (session.Session, *session.ComplianceScheme, bool) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return s, nil, false
	}
	cs := s.Registration.SelectedComplianceScheme
	if cs == nil {
		render.Redirect(w, r, string(journey.PageLanding))
		return s, nil, false
	}
	return s, cs, true
}

// memberID reads the selected scheme id of the member from the route. A malformed id sends
// the browser back to the member list.
func memberID(w http.ResponseWriter, r *http.Request) (id.SelectedSchemeID, bool) {
	selected, err := id.ParseSelectedSchemeID(chi.URLParam(r, "id"))
	if err != nil {
		render.Redirect(w, r, string(journey.PageSchemeMembers))
		return id.SelectedSchemeID{}, false
	}
	return selected, true
}

func memberPath(page journey.Page, selected id.SelectedSchemeID) string {
	return strings.Replace(string(page), "{id}", selected.String(), 1)
}

func memberStep(page journey.Page, selected id.SelectedSchemeID) journey.Step {
	return journey.Step{Page: page, Path: memberPath(page, selected)}
}

type membersModel struct {
	ComplianceSchemeName string                  `json:"complianceSchemeName"`
	Members              *accounts.SchemeMembers `json:"members"`
	Search               string                  `json:"search,omitempty"`
	RemovedMember        string                  `json:"removedMember,omitempty"`
}

func (h *Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, cs, ok := h.load(w, r)
	if !ok {
		return
	}
	q := accounts.SchemeMembersQuery{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Page:     1,
		PageSize: membersPageSize,
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	members, err := h.schemes.GetSchemeMembers(ctx, requestcontext.OrganisationID(ctx), cs.ID, q)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load scheme members", err, "compliance_scheme_id", cs.ID)
		return
	}

	removed := s.SchemeMembership.RemovedSchemeMember
	s.SchemeMembership = session.SchemeMembershipSession{}
	s = pages.Enter(s, journey.SchemeMembership, pages.Here(journey.PageSchemeMembers, r))
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.View(w, ViewMembers, membersModel{
		ComplianceSchemeName: cs.Name,
		Members:              members,
		Search:               q.Search,
		RemovedMember:        removed,
	}, nil, string(journey.PageLanding))
}

type detailsModel struct {
	SelectedSchemeID id.SelectedSchemeID           `json:"selectedSchemeId"`
	Details          *accounts.SchemeMemberDetails `json:"details"`
	RemovalURL       string                        `json:"removalUrl"`
}

// details loads the member named by the route, sending the browser back to the member list
// when it does not exist.
func (h *Handler) details(w http.ResponseWriter, r *http.Request, selected id.SelectedSchemeID) (*accounts.SchemeMemberDetails, bool) {
	ctx := r.Context()
	d, err := h.schemes.GetSchemeMemberDetails(ctx, requestcontext.OrganisationID(ctx), selected)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load scheme member", err, "selected_scheme_id", selected)
		return nil, false
	}
	if d == nil {
		render.Redirect(w, r, string(journey.PageSchemeMembers))
		return nil, false
	}
	return d, true
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	d, ok := h.details(w, r, selected)
	if !ok {
		return
	}
	here := pages.Here(journey.PageSchemeMemberDetails, r)
	s, err := pages.Advance(s, journey.SchemeMembership, pages.From(s, journey.SchemeMembership, journey.PageSchemeMembers), here)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "journey rejected move", err)
		return
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.View(w, ViewMemberDetails, detailsModel{
		SelectedSchemeID: selected,
		Details:          d,
		RemovalURL:       memberPath(journey.PageReasonForRemoval, selected),
	}, nil, pages.BackLink(s, journey.SchemeMembership, journey.PageSchemeMemberDetails, string(journey.PageSchemeMembers)))
}

type reasonModel struct {
	OrganisationName string                      `json:"organisationName"`
	Reasons          []accounts.ReasonForRemoval `json:"reasons"`
	Selected         string                      `json:"selected,omitempty"`
}

type reasonForm struct {
	ReasonCode string `form:"reason_code" validate:"required" errmsg:"Select a reason for removing the member"`
}

func (h *Handler) renderReason(w http.ResponseWriter, r *http.Request, s session.Session, selected id.SelectedSchemeID, reasons []accounts.ReasonForRemoval, chosen string, ms modelstate.ModelState) {
	ctx := r.Context()
	d, ok := h.details(w, r, selected)
	if !ok {
		return
	}
	if reasons == nil {
		var err error
		if reasons, err = h.schemes.GetReasonsForRemoval(ctx); err != nil {
			render.Fail(ctx, w, r, h.logger, "failed to load removal reasons", err)
			return
		}
	}
	render.View(w, ViewReason, reasonModel{
		OrganisationName: d.OrganisationName,
		Reasons:          reasons,
		Selected:         chosen,
	}, ms, pages.BackLink(s, journey.SchemeMembership, journey.PageReasonForRemoval, memberPath(journey.PageSchemeMemberDetails, selected)))
}

func (h *Handler) handleReason(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	s, err := pages.Advance(s, journey.SchemeMembership,
		pages.From(s, journey.SchemeMembership, journey.PageSchemeMemberDetails), pages.Here(journey.PageReasonForRemoval, r))
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "journey rejected move", err)
		return
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderReason(w, r, s, selected, nil, s.SchemeMembership.SelectedReasonForRemoval, nil)
}

// handleReasonPost records the chosen reason. Reasons that need detail continue to tell us
// more, the rest go straight to confirmation.
func (h *Handler) handleReasonPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	reasons, err := h.schemes.GetReasonsForRemoval(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load removal reasons", err)
		return
	}

	form := reasonForm{ReasonCode: r.PostFormValue(fieldReason)}
	ms := modelstate.New()
	if !h.forms.Validate(form, ms) {
		h.renderReason(w, r, s, selected, reasons, "", ms)
		return
	}
	reason, known := findReason(reasons, form.ReasonCode)
	if !known {
		h.logger.WarnContext(ctx, "unknown removal reason posted",
			"request_id", requestcontext.RequestID(ctx),
			"reason_code", form.ReasonCode,
		)
		ms.AddError(fieldReason, "Select a reason for removing the member")
		h.renderReason(w, r, s, selected, reasons, "", ms)
		return
	}

	s.SchemeMembership.SelectedReasonForRemoval = reason.Code
	next := memberStep(journey.PageConfirmRemoval, selected)
	if reason.RequiresReason {
		next = memberStep(journey.PageTellUsMore, selected)
	} else {
		s.SchemeMembership.TellUsMore = ""
	}
	pages.Move(w, r, h.sessions, h.logger, journey.SchemeMembership, s, pages.Here(journey.PageReasonForRemoval, r), next)
}

func findReason(reasons []accounts.ReasonForRemoval, code string) (accounts.ReasonForRemoval, bool) {
	for _, rr := range reasons {
		if rr.Code == code {
			return rr, true
		}
	}
	return accounts.ReasonForRemoval{}, false
}

type tellUsMoreModel struct {
	ReasonCode string `json:"reasonCode"`
	TellUsMore string `json:"tellUsMore,omitempty"`
}

type tellUsMoreForm struct {
	TellUsMore string `form:"tell_us_more" validate:"required,max=200" errmsg:"Enter the reason you are removing this member" errmsg_max:"Reason must be 200 characters or less"`
}

func (h *Handler) renderTellUsMore(w http.ResponseWriter, s session.Session, selected id.SelectedSchemeID, text string, ms modelstate.ModelState) {
	render.View(w, ViewTellUsMore, tellUsMoreModel{
		ReasonCode: s.SchemeMembership.SelectedReasonForRemoval,
		TellUsMore: text,
	}, ms, pages.BackLink(s, journey.SchemeMembership, journey.PageTellUsMore, memberPath(journey.PageReasonForRemoval, selected)))
}

func (h *Handler) handleTellUsMore(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	h.renderTellUsMore(w, s, selected, s.SchemeMembership.TellUsMore, nil)
}

func (h *Handler) handleTellUsMorePost(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	form := tellUsMoreForm{TellUsMore: strings.TrimSpace(r.PostFormValue(fieldTellUsMore))}
	ms := modelstate.New()
	if !h.forms.Validate(form, ms) {
		h.renderTellUsMore(w, s, selected, form.TellUsMore, ms)
		return
	}
	s.SchemeMembership.TellUsMore = form.TellUsMore
	pages.Move(w, r, h.sessions, h.logger, journey.SchemeMembership, s,
		pages.Here(journey.PageTellUsMore, r), memberStep(journey.PageConfirmRemoval, selected))
}

type confirmModel struct {
	OrganisationName string `json:"organisationName"`
	ReasonCode       string `json:"reasonCode"`
	TellUsMore       string `json:"tellUsMore,omitempty"`
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	d, ok := h.details(w, r, selected)
	if !ok {
		return
	}
	render.View(w, ViewConfirm, confirmModel{
		OrganisationName: d.OrganisationName,
		ReasonCode:       s.SchemeMembership.SelectedReasonForRemoval,
		TellUsMore:       s.SchemeMembership.TellUsMore,
	}, nil, pages.BackLink(s, journey.SchemeMembership, journey.PageConfirmRemoval, memberPath(journey.PageReasonForRemoval, selected)))
}

func (h *Handler) handleConfirmPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, cs, ok := h.load(w, r)
	if !ok {
		return
	}
	selected, ok := memberID(w, r)
	if !ok {
		return
	}
	if s.SchemeMembership.SelectedReasonForRemoval == "" {
		render.Redirect(w, r, memberPath(journey.PageReasonForRemoval, selected))
		return
	}
	removed, err := h.schemes.RemoveSchemeMember(ctx, requestcontext.OrganisationID(ctx), cs.ID, selected,
		s.SchemeMembership.SelectedReasonForRemoval, s.SchemeMembership.TellUsMore)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to remove scheme member", err,
			"compliance_scheme_id", cs.ID,
			"selected_scheme_id", selected,
		)
		return
	}
	h.logger.InfoContext(ctx, "scheme member removed",
		"request_id", requestcontext.RequestID(ctx),
		"compliance_scheme_id", cs.ID,
		"selected_scheme_id", selected,
		"reason_code", s.SchemeMembership.SelectedReasonForRemoval,
	)

	if removed != nil {
		s.SchemeMembership.RemovedSchemeMember = removed.OrganisationName
	}
	s.SchemeMembership.SelectedReasonForRemoval = ""
	s.SchemeMembership.TellUsMore = ""
	pages.Move(w, r, h.sessions, h.logger, journey.SchemeMembership, s,
		pages.Here(journey.PageConfirmRemoval, r), memberStep(journey.PageSchemeMemberRemoved, selected))
}

type removedModel struct {
	OrganisationName     string `json:"organisationName"`
	ComplianceSchemeName string `json:"complianceSchemeName"`
}

func (h *Handler) handleRemoved(w http.ResponseWriter, r *http.Request) {
	s, cs, ok := h.load(w, r)
	if !ok {
		return
	}
	render.View(w, ViewRemoved, removedModel{
		OrganisationName:     s.SchemeMembership.RemovedSchemeMember,
		ComplianceSchemeName: cs.Name,
	}, nil, string(journey.PageSchemeMembers))
}
