// Package landing serves the landing page of producers and compliance scheme operators and
// the scheme selection actions started from it.
package landing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"schemereg/internal/accounts"
	"schemereg/internal/identity"
	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/web/pages"
	"schemereg/internal/web/render"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/platform/formvalidation"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/requestcontext"
)

// Schemes is the compliance scheme service as used by the landing page.
type Schemes interface {
	GetProducerComplianceScheme(ctx context.Context, producerID id.OrganisationID) (*accounts.ProducerComplianceScheme, error)
	GetOperatorComplianceSchemes(ctx context.Context, operatorID id.OrganisationID) ([]accounts.ComplianceScheme, error)
	GetAllComplianceSchemes(ctx context.Context) ([]accounts.ComplianceScheme, error)
	GetComplianceSchemeSummary(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.ComplianceSchemeSummary, error)
	GetNotifications(ctx context.Context, orgID id.OrganisationID) ([]accounts.Notification, error)
	SelectComplianceScheme(ctx context.Context, producerID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error)
	UpdateComplianceScheme(ctx context.Context, producerID id.OrganisationID, current accounts.ProducerComplianceScheme, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error)
	StopComplianceScheme(ctx context.Context, producerID id.OrganisationID, current accounts.ProducerComplianceScheme) error
}

// Views.
const (
	ViewProducer         = "ProducerLanding"
	ViewComplianceScheme = "ComplianceSchemeLanding"
)

// Routes of the scheme selection actions.
const (
	RouteSelectScheme = "/compliance-schemes/select"
	RouteUsingScheme  = "/compliance-schemes/using"
	RouteStopScheme   = "/compliance-schemes/stop"
)

const fieldScheme = "compliance_scheme_id"

// Handler serves the landing page.
type Handler struct {
	sessions pages.Sessions
	schemes  Schemes
	forms    *formvalidation.Validator
	logger   *slog.Logger
}

// New creates a landing Handler.
func New(sessions pages.Sessions, schemes Schemes, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		schemes:  schemes,
		forms:    formvalidation.New(),
		logger:   logger,
	}
}

// Register mounts the landing page and the operator scheme selection.
func (h *Handler) Register(r chi.Router) {
	r.Get(string(journey.PageLanding), h.handleLanding)
	r.Post(RouteSelectScheme, h.handleSelectScheme)
}

// RegisterProducerSchemes mounts the producer's scheme membership actions. Callers restrict
// them to users allowed to choose a scheme.
func (h *Handler) RegisterProducerSchemes(r chi.Router) {
	r.Post(RouteUsingScheme, h.handleUsingScheme)
	r.Post(RouteStopScheme, h.handleStopScheme)
}

type schemeForm struct {
	ComplianceSchemeID string `form:"compliance_scheme_id" validate:"required,uuid" errmsg:"Select a compliance scheme"`
}

type operatorModel struct {
	OrganisationName string                            `json:"organisationName"`
	Schemes          []accounts.ComplianceScheme       `json:"complianceSchemes"`
	Selected         *session.ComplianceScheme         `json:"selectedComplianceScheme,omitempty"`
	Summary          *accounts.ComplianceSchemeSummary `json:"summary,omitempty"`
	Notifications    []accounts.Notification           `json:"notifications"`
}

type producerModel struct {
	OrganisationName string                    `json:"organisationName"`
	Current          *session.ComplianceScheme `json:"currentComplianceScheme,omitempty"`
	OperatorName     string                    `json:"complianceSchemeOperatorName,omitempty"`
	Notifications    []accounts.Notification   `json:"notifications"`
}

// handleLanding refreshes the user snapshot, restarts every journey at the landing page and
// renders the operator or producer landing.
func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	s, u, org, ok := h.load(w, r)
	if !ok {
		return
	}
	s.UserData = userData(u)
	home := journey.New(journey.At(journey.PageLanding))
	s = s.WithJourney(journey.FamilyRegistration, home).
		WithJourney(journey.FamilySchemeMembership, home).
		WithJourney(journey.FamilyNominatedDelegatedPerson, home)

	if org.IsComplianceScheme {
		h.renderOperator(w, r, s, org, nil)
		return
	}
	h.renderProducer(w, r, s, org)
}

// load returns the session, the signed-in user and the organisation they act for.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (session.Session, identity.User, identity.Organisation, bool) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return s, identity.User{}, identity.Organisation{}, false
	}
	u, _ := identity.FromContext(ctx)
	org, ok := u.Primary()
	if !ok {
		render.Fail(ctx, w, r, h.logger, "user has no organisation",
			dErrors.New(dErrors.CodeForbidden, "no organisation enrolment"), "user_id", u.ID)
		return s, u, org, false
	}
	return s, u, org, true
}

func userData(u identity.User) session.UserData {
	orgs := make([]session.Organisation, 0, len(u.Organisations))
	for _, o := range u.Organisations {
		orgs = append(orgs, session.Organisation{
			ID:                 o.ID,
			Name:               o.Name,
			OrganisationRole:   o.OrganisationRole,
			IsComplianceScheme: o.IsComplianceScheme,
			EnrolmentStatus:    o.EnrolmentStatus,
			NationID:           o.NationID,
		})
	}
	return session.UserData{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		ServiceRole:   u.ServiceRole,
		Organisations: orgs,
	}
}

// renderOperator loads the operator's schemes and notifications concurrently. A single
// scheme is selected automatically; a previous selection that is no longer one of the
// operator's schemes is dropped.
func (h *Handler) renderOperator(w http.ResponseWriter, r *http.Request, s session.Session, org identity.Organisation, ms modelstate.ModelState) {
	ctx := r.Context()
	var (
		schemes       []accounts.ComplianceScheme
		notifications []accounts.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schemes, err = h.schemes.GetOperatorComplianceSchemes(gctx, org.ID)
		return err
	})
	g.Go(func() error {
		var err error
		notifications, err = h.schemes.GetNotifications(gctx, org.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load operator landing", err, "organisation_id", org.ID)
		return
	}

	selected := s.Registration.SelectedComplianceScheme
	if selected != nil {
		if _, found := findScheme(schemes, selected.ID); !found {
			selected = nil
		}
	}
	if selected == nil && len(schemes) == 1 {
		selected = schemeOf(schemes[0])
	}
	s.Registration.SelectedComplianceScheme = selected

	m := operatorModel{
		OrganisationName: org.Name,
		Schemes:          schemes,
		Selected:         selected,
		Notifications:    notifications,
	}
	if selected != nil {
		summary, err := h.schemes.GetComplianceSchemeSummary(ctx, org.ID, selected.ID)
		if err != nil {
			render.Fail(ctx, w, r, h.logger, "failed to load scheme summary", err,
				"organisation_id", org.ID,
				"compliance_scheme_id", selected.ID,
			)
			return
		}
		m.Summary = summary
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.View(w, ViewComplianceScheme, m, ms, "")
}

// renderProducer loads the producer's current scheme and notifications concurrently and
// records the scheme in the session.
func (h *Handler) renderProducer(w http.ResponseWriter, r *http.Request, s session.Session, org identity.Organisation) {
	ctx := r.Context()
	var (
		current       *accounts.ProducerComplianceScheme
		notifications []accounts.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = h.schemes.GetProducerComplianceScheme(gctx, org.ID)
		return err
	})
	g.Go(func() error {
		var err error
		notifications, err = h.schemes.GetNotifications(gctx, org.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load producer landing", err, "organisation_id", org.ID)
		return
	}

	m := producerModel{OrganisationName: org.Name, Notifications: notifications}
	s.Registration.SelectedComplianceScheme = nil
	s.Registration.CurrentComplianceScheme = nil
	if current != nil {
		s.Registration.CurrentComplianceScheme = &session.ComplianceScheme{
			ID:               current.ComplianceSchemeID,
			Name:             current.ComplianceSchemeName,
			SelectedSchemeID: current.SelectedSchemeID,
		}
		m.Current = s.Registration.CurrentComplianceScheme
		m.OperatorName = current.ComplianceSchemeOperatorName
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.View(w, ViewProducer, m, nil, "")
}

func findScheme(schemes []accounts.ComplianceScheme, csID id.ComplianceSchemeID) (accounts.ComplianceScheme, bool) {
	for _, cs := range schemes {
		if cs.ID == csID {
			return cs, true
		}
	}
	return accounts.ComplianceScheme{}, false
}

func schemeOf(cs accounts.ComplianceScheme) *session.ComplianceScheme {
	return &session.ComplianceScheme{ID: cs.ID, Name: cs.Name, NationID: cs.NationID}
}

// parseScheme validates the posted scheme id. ok is false when the form is invalid; the
// failure is recorded in ms.
func (h *Handler) parseScheme(r *http.Request, ms modelstate.ModelState) (id.ComplianceSchemeID, bool) {
	form := schemeForm{ComplianceSchemeID: r.PostFormValue(fieldScheme)}
	if !h.forms.Validate(form, ms) {
		return id.ComplianceSchemeID{}, false
	}
	csID, err := id.ParseComplianceSchemeID(form.ComplianceSchemeID)
	if err != nil {
		ms.AddError(fieldScheme, "Select a compliance scheme")
		return id.ComplianceSchemeID{}, false
	}
	return csID, true
}

// handleSelectScheme records which of the operator's schemes the user is acting for.
func (h *Handler) handleSelectScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, org, ok := h.load(w, r)
	if !ok {
		return
	}
	if !org.IsComplianceScheme {
		render.Redirect(w, r, string(journey.PageLanding))
		return
	}

	ms := modelstate.New()
	csID, valid := h.parseScheme(r, ms)
	if !valid {
		h.renderOperator(w, r, s, org, ms)
		return
	}
	schemes, err := h.schemes.GetOperatorComplianceSchemes(ctx, org.ID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load operator schemes", err, "organisation_id", org.ID)
		return
	}
	cs, found := findScheme(schemes, csID)
	if !found {
		h.logger.WarnContext(ctx, "operator selected a scheme it does not run",
			"request_id", requestcontext.RequestID(ctx),
			"organisation_id", org.ID,
			"compliance_scheme_id", csID,
		)
		ms.AddError(fieldScheme, "Select a compliance scheme")
		h.renderOperator(w, r, s, org, ms)
		return
	}

	s.Registration.SelectedComplianceScheme = schemeOf(cs)
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, string(journey.PageLanding))
}

// handleUsingScheme links the producer to the posted scheme, selecting it for a producer
// without a scheme and moving an existing membership otherwise.
func (h *Handler) handleUsingScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, org, ok := h.load(w, r)
	if !ok {
		return
	}
	ms := modelstate.New()
	csID, valid := h.parseScheme(r, ms)
	if !valid {
		h.logger.WarnContext(ctx, "invalid compliance scheme posted",
			"request_id", requestcontext.RequestID(ctx),
			"organisation_id", org.ID,
		)
		render.Redirect(w, r, string(journey.PageLanding))
		return
	}

	all, err := h.schemes.GetAllComplianceSchemes(ctx)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load compliance schemes", err)
		return
	}
	cs, found := findScheme(all, csID)
	if !found {
		render.Redirect(w, r, string(journey.PageLanding))
		return
	}
	current, err := h.schemes.GetProducerComplianceScheme(ctx, org.ID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load producer scheme", err, "organisation_id", org.ID)
		return
	}

	var selected *accounts.SelectedScheme
	switch {
	case current == nil:
		selected, err = h.schemes.SelectComplianceScheme(ctx, org.ID, csID)
	case current.ComplianceSchemeID == csID:
		selected = &accounts.SelectedScheme{ID: current.SelectedSchemeID}
	default:
		selected, err = h.schemes.UpdateComplianceScheme(ctx, org.ID, *current, csID)
	}
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to change compliance scheme", err,
			"organisation_id", org.ID,
			"compliance_scheme_id", csID,
		)
		return
	}

	next := schemeOf(cs)
	if selected != nil {
		next.SelectedSchemeID = selected.ID
	}
	s.Registration.CurrentComplianceScheme = next
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, string(journey.PageLanding))
}

// handleStopScheme ends the producer's membership of its current scheme.
func (h *Handler) handleStopScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _, org, ok := h.load(w, r)
	if !ok {
		return
	}
	current, err := h.schemes.GetProducerComplianceScheme(ctx, org.ID)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load producer scheme", err, "organisation_id", org.ID)
		return
	}
	if current == nil {
		render.Redirect(w, r, string(journey.PageLanding))
		return
	}
	if err := h.schemes.StopComplianceScheme(ctx, org.ID, *current); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to stop compliance scheme", err,
			"organisation_id", org.ID,
			"selected_scheme_id", current.SelectedSchemeID,
		)
		return
	}
	s.Registration.CurrentComplianceScheme = nil
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, string(journey.PageLanding))
}
