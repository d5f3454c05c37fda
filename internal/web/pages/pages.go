// Package pages holds the plumbing shared by the page handlers: session access, journey
// steps for the current request and common query parameters.
package pages

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/web/render"
	id "schemereg/pkg/domain"
)

// Sessions loads and saves the request's session.
type Sessions interface {
	Get(ctx context.Context) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
}

// Here is the step of page as served for r, keeping route ids and the query string.
func Here(page journey.Page, r *http.Request) journey.Step {
	return journey.Step{Page: page, Path: r.URL.RequestURI()}
}

// Advance records the move from -> to in the flow's journey.
func Advance(s session.Session, flow journey.Flow, from, to journey.Step) (session.Session, error) {
	j, err := flow.Advance(s.Journey(flow.Family), from, to)
	if err != nil {
		return s, err
	}
	return s.WithJourney(flow.Family, j), nil
}

// Move records from -> to, saves the session and redirects to to. A rejected move or a
// failed save sends the browser to the error page.
func Move(w http.ResponseWriter, r *http.Request, sessions Sessions, logger *slog.Logger, flow journey.Flow, s session.Session, from, to journey.Step) {
	ctx := r.Context()
	s, err := Advance(s, flow, from, to)
	if err != nil {
		render.Fail(ctx, w, r, logger, "journey rejected move", err,
			"from", from.Page,
			"to", to.Page,
		)
		return
	}
	if err := sessions.Save(ctx, s); err != nil {
		render.Fail(ctx, w, r, logger, "failed to save session", err)
		return
	}
	render.Redirect(w, r, to.Path)
}

// Load returns the request's session, sending the browser to the error page when it cannot
// be read.
func Load(w http.ResponseWriter, r *http.Request, sessions Sessions, logger *slog.Logger) (session.Session, bool) {
	s, err := sessions.Get(r.Context())
	if err != nil {
		render.Fail(r.Context(), w, r, logger, "failed to load session", err)
		return s, false
	}
	return s, true
}

// Enter starts a fresh journey of flow at its start page followed by here. Entry pages are
// reached from links on the landing page rather than from another step.
func Enter(s session.Session, flow journey.Flow, here journey.Step) session.Session {
	start := journey.At(flow.Start)
	j := flow.Restart(start)
	if here.Page != start.Page {
		j = j.AddIfNotExists(here)
	}
	return s.WithJourney(flow.Family, j)
}

// From returns the last recorded visit to page, or page at its pattern path.
func From(s session.Session, flow journey.Flow, page journey.Page) journey.Step {
	if step, ok := s.Journey(flow.Family).Find(page); ok {
		return step
	}
	return journey.At(page)
}

// BackLink is the page visited before page, or fallback.
func BackLink(s session.Session, flow journey.Flow, page journey.Page, fallback string) string {
	if prev := s.Journey(flow.Family).PreviousOrDefault(page); prev != "" {
		return prev
	}
	return fallback
}

const submissionIDParam = "submissionId"

// SubmissionID reads the submissionId query parameter.
func SubmissionID(r *http.Request) (id.SubmissionID, bool) {
	raw := r.URL.Query().Get(submissionIDParam)
	if raw == "" {
		return id.SubmissionID{}, false
	}
	subID, err := id.ParseSubmissionID(raw)
	if err != nil {
		return id.SubmissionID{}, false
	}
	return subID, true
}

// WithSubmissionID appends the submissionId query parameter to path.
func WithSubmissionID(path string, subID id.SubmissionID) string {
	return path + "?" + url.Values{submissionIDParam: {subID.String()}}.Encode()
}
