// Package nomination serves the pages a nominated delegated person uses to accept a
// nomination.
package nomination

import (
	"context"
	"log/slog"
	"net/http"
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

// Nominations reads and accepts delegated person nominations.
type Nominations interface {
	GetNominationRequest(ctx context.Context, enrolmentID id.EnrolmentID) (*accounts.NominationRequest, error)
	AcceptNomination(ctx context.Context, orgID id.OrganisationID, enrolmentID id.EnrolmentID, req accounts.AcceptNominationRequest) error
}

// Views.
const (
	ViewTelephone         = "NominationTelephoneNumber"
	ViewConfirmPermission = "NominationConfirmPermission"
	ViewDeclaration       = "NominationDeclaration"
)

const fieldTelephone = "telephone_number"

// Handler serves the nomination pages.
type Handler struct {
	sessions    pages.Sessions
	nominations Nominations
	forms       *formvalidation.Validator
	logger      *slog.Logger
}

// New creates a nomination Handler.
func New(sessions pages.Sessions, nominations Nominations, logger *slog.Logger) *Handler {
	return &Handler{
		sessions:    sessions,
		nominations: nominations,
		forms:       formvalidation.New(),
		logger:      logger,
	}
}

// Register mounts the nomination pages. The telephone number page is entered from the
// nomination notification on the landing page.
func (h *Handler) Register(r chi.Router, guard *journey.Guard) {
	flow := journey.NominatedDelegatedPerson
	r.Get(string(journey.PageNominationTelephoneNumber), h.handleTelephone)
	r.With(guard.Require(flow, journey.PageNominationTelephoneNumber)).Post(string(journey.PageNominationTelephoneNumber), h.handleTelephonePost)
	r.With(guard.Require(flow, journey.PageNominationConfirmPermission)).Get(string(journey.PageNominationConfirmPermission), h.handleConfirmPermission)
	r.With(guard.Require(flow, journey.PageNominationConfirmPermission)).Post(string(journey.PageNominationConfirmPermission), h.handleConfirmPermissionPost)
	r.With(guard.Require(flow, journey.PageNominationDeclaration)).Get(string(journey.PageNominationDeclaration), h.handleDeclaration)
	r.With(guard.Require(flow, journey.PageNominationDeclaration)).Post(string(journey.PageNominationDeclaration), h.handleDeclarationPost)
}

func enrolmentID(w http.ResponseWriter, r *http.Request) (id.EnrolmentID, bool) {
	enrolment, err := id.ParseEnrolmentID(chi.URLParam(r, "enrolmentId"))
	if err != nil {
		render.Redirect(w, r, string(journey.PageLanding))
		return id.EnrolmentID{}, false
	}
	return enrolment, true
}

func nominationStep(page journey.Page, enrolment id.EnrolmentID) journey.Step {
	return journey.Step{Page: page, Path: strings.Replace(string(page), "{enrolmentId}", enrolment.String(), 1)}
}

type telephoneModel struct {
	OrganisationName  string `json:"organisationName"`
	NominatorFullName string `json:"nominatorFullName"`
	TelephoneNumber   string `json:"telephoneNumber,omitempty"`
}

type telephoneForm struct {
	TelephoneNumber string `form:"telephone_number" validate:"required,min=10,max=20" errmsg:"Enter a telephone number" errmsg_min:"Enter a telephone number, like 01632 960 001 or 07700 900 982" errmsg_max:"Telephone number must be 20 characters or less"`
}

func (h *Handler) renderTelephone(w http.ResponseWriter, s session.Session, number string, ms modelstate.ModelState) {
	n := s.NominatedDelegatedPerson
	render.View(w, ViewTelephone, telephoneModel{
		OrganisationName:  n.OrganisationName,
		NominatorFullName: n.NominatorFullName,
		TelephoneNumber:   number,
	}, ms, string(journey.PageLanding))
}

// handleTelephone starts the nomination journey. The nomination is loaded once here and its
// names are kept in the session for the following pages.
func (h *Handler) handleTelephone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	enrolment, ok := enrolmentID(w, r)
	if !ok {
		return
	}
	nomination, err := h.nominations.GetNominationRequest(ctx, enrolment)
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to load nomination", err, "enrolment_id", enrolment)
		return
	}
	if nomination == nil {
		h.logger.InfoContext(ctx, "nomination not found",
			"request_id", requestcontext.RequestID(ctx),
			"enrolment_id", enrolment,
		)
		render.Redirect(w, r, string(journey.PageLanding))
		return
	}

	number := s.NominatedDelegatedPerson.TelephoneNumber
	s.NominatedDelegatedPerson = session.NominatedDelegatedPersonSession{
		NomineeFullName:      nomination.NomineeFullName,
		NominatorFullName:    nomination.NominatorFullName,
		NominatorServiceRole: nomination.NominatorServiceRole,
		OrganisationName:     nomination.OrganisationName,
		TelephoneNumber:      number,
	}
	s = pages.Enter(s, journey.NominatedDelegatedPerson, pages.Here(journey.PageNominationTelephoneNumber, r))
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	h.renderTelephone(w, s, number, nil)
}

func (h *Handler) handleTelephonePost(w http.ResponseWriter, r *http.Request) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	enrolment, ok := enrolmentID(w, r)
	if !ok {
		return
	}
	form := telephoneForm{TelephoneNumber: strings.TrimSpace(r.PostFormValue(fieldTelephone))}
	ms := modelstate.New()
	if !h.forms.Validate(form, ms) {
		h.renderTelephone(w, s, form.TelephoneNumber, ms)
		return
	}
	s.NominatedDelegatedPerson.TelephoneNumber = form.TelephoneNumber
	pages.Move(w, r, h.sessions, h.logger, journey.NominatedDelegatedPerson, s,
		pages.Here(journey.PageNominationTelephoneNumber, r), nominationStep(journey.PageNominationConfirmPermission, enrolment))
}

type permissionModel struct {
	OrganisationName     string `json:"organisationName"`
	NominatorFullName    string `json:"nominatorFullName"`
	NominatorServiceRole string `json:"nominatorServiceRole"`
}

func (h *Handler) handleConfirmPermission(w http.ResponseWriter, r *http.Request) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	n := s.NominatedDelegatedPerson
	render.View(w, ViewConfirmPermission, permissionModel{
		OrganisationName:     n.OrganisationName,
		NominatorFullName:    n.NominatorFullName,
		NominatorServiceRole: n.NominatorServiceRole,
	}, nil, pages.BackLink(s, journey.NominatedDelegatedPerson, journey.PageNominationConfirmPermission, string(journey.PageLanding)))
}

func (h *Handler) handleConfirmPermissionPost(w http.ResponseWriter, r *http.Request) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	enrolment, ok := enrolmentID(w, r)
	if !ok {
		return
	}
	pages.Move(w, r, h.sessions, h.logger, journey.NominatedDelegatedPerson, s,
		pages.Here(journey.PageNominationConfirmPermission, r), nominationStep(journey.PageNominationDeclaration, enrolment))
}

type declarationModel struct {
	NomineeFullName  string `json:"nomineeFullName"`
	OrganisationName string `json:"organisationName"`
	TelephoneNumber  string `json:"telephoneNumber"`
}

func (h *Handler) handleDeclaration(w http.ResponseWriter, r *http.Request) {
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	n := s.NominatedDelegatedPerson
	render.View(w, ViewDeclaration, declarationModel{
		NomineeFullName:  n.NomineeFullName,
		OrganisationName: n.OrganisationName,
		TelephoneNumber:  n.TelephoneNumber,
	}, nil, pages.BackLink(s, journey.NominatedDelegatedPerson, journey.PageNominationDeclaration, string(journey.PageLanding)))
}

// handleDeclarationPost accepts the nomination and ends the journey on the landing page.
func (h *Handler) handleDeclarationPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := pages.Load(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	enrolment, ok := enrolmentID(w, r)
	if !ok {
		return
	}
	n := s.NominatedDelegatedPerson
	if n.TelephoneNumber == "" {
		render.Redirect(w, r, nominationStep(journey.PageNominationTelephoneNumber, enrolment).Path)
		return
	}
	err := h.nominations.AcceptNomination(ctx, requestcontext.OrganisationID(ctx), enrolment, accounts.AcceptNominationRequest{
		Telephone:          n.TelephoneNumber,
		NomineeDeclaration: n.NomineeFullName,
	})
	if err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to accept nomination", err, "enrolment_id", enrolment)
		return
	}
	h.logger.InfoContext(ctx, "nomination accepted",
		"request_id", requestcontext.RequestID(ctx),
		"enrolment_id", enrolment,
	)

	s.NominatedDelegatedPerson = session.NominatedDelegatedPersonSession{}
	if err := h.sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, h.logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, string(journey.PageLanding))
}
