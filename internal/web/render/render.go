// Package render writes page responses. A page is rendered as a JSON page model that a
// view layer turns into markup; navigation between pages is always a 302 redirect.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"schemereg/internal/journey"
	"schemereg/pkg/platform/httputil"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/requestcontext"
)

// Page is the model handed to a view.
type Page struct {
	View     string                `json:"view"`
	Model    any                   `json:"model"`
	Errors   modelstate.ModelState `json:"errors"`
	BackLink string                `json:"back_link,omitempty"`
}

// View renders a page with 200. Pages with validation errors are rendered again with the
// same status.
func View(w http.ResponseWriter, view string, model any, ms modelstate.ModelState, backLink string) {
	if ms == nil {
		ms = modelstate.New()
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, Page{View: view, Model: model, Errors: ms, BackLink: backLink})
}

// Redirect sends the browser to path with 302.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// Fail logs a failure that stops the page and sends the browser to the error page.
func Fail(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error, attrs ...any) {
	Failed(ctx, w, r, logger, string(journey.PageError), msg, err, attrs...)
}

// Failed logs a failure and sends the browser to a flow-specific failure page.
func Failed(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger, to, msg string, err error, attrs ...any) {
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	}, attrs...)
	logger.ErrorContext(ctx, msg, args...)
	Redirect(w, r, to)
}

// Download writes a CSV attachment produced by write.
func Download(w http.ResponseWriter, fileName string, write func(io.Writer) error) error {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	return write(w)
}
