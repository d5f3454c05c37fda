package pages

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemereg/internal/journey"
	"schemereg/internal/session"
	id "schemereg/pkg/domain"
)

type fakeSessions struct {
	saved   *session.Session
	getErr  error
	saveErr error
}

func (f *fakeSessions) Get(context.Context) (session.Session, error) {
	return session.Session{}, f.getErr
}

func (f *fakeSessions) Save(_ context.Context, s session.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &s
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnter(t *testing.T) {
	t.Run("restarts the journey at the flow start", func(t *testing.T) {
		s := session.Session{}.WithJourney(journey.FamilySchemeMembership, journey.New(
			journey.At(journey.PageLanding),
			journey.At(journey.PageSchemeMembers),
			journey.Step{Page: journey.PageSchemeMemberDetails, Path: "/scheme-members/abc"},
		))

		s = Enter(s, journey.SchemeMembership, journey.At(journey.PageSchemeMembers))

		assert.Equal(t, []journey.Step{
			journey.At(journey.PageLanding),
			journey.At(journey.PageSchemeMembers),
		}, s.Journey(journey.FamilySchemeMembership).Steps())
	})

	t.Run("entering the start page records it once", func(t *testing.T) {
		s := Enter(session.Session{}, journey.Registration, journey.At(journey.PageLanding))

		assert.Equal(t, 1, s.Journey(journey.FamilyRegistration).Len())
	})
}

func TestFromAndBackLink(t *testing.T) {
	details := journey.Step{Page: journey.PageSchemeMemberDetails, Path: "/scheme-members/abc"}
	s := session.Session{}.WithJourney(journey.FamilySchemeMembership, journey.New(
		journey.At(journey.PageLanding),
		journey.Step{Page: journey.PageSchemeMembers, Path: "/scheme-members?page=2"},
		details,
	))

	assert.Equal(t, details, From(s, journey.SchemeMembership, journey.PageSchemeMemberDetails))
	assert.Equal(t, journey.At(journey.PageReasonForRemoval), From(s, journey.SchemeMembership, journey.PageReasonForRemoval))

	assert.Equal(t, "/scheme-members?page=2", BackLink(s, journey.SchemeMembership, journey.PageSchemeMemberDetails, "/"))
	assert.Equal(t, "/", BackLink(session.Session{}, journey.SchemeMembership, journey.PageSchemeMemberDetails, "/"))
}

func TestMove(t *testing.T) {
	start := session.Session{}.WithJourney(journey.FamilyRegistration, journey.New(
		journey.At(journey.PageLanding),
		journey.At(journey.PageFileUploadSubLanding),
	))

	t.Run("allowed move saves and redirects", func(t *testing.T) {
		sessions := &fakeSessions{}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, string(journey.PageFileUploadSubLanding), nil)

		Move(rr, req, sessions, discard(), journey.Registration, start,
			journey.At(journey.PageFileUploadSubLanding), journey.At(journey.PageFileUpload))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, string(journey.PageFileUpload), rr.Header().Get("Location"))
		require.NotNil(t, sessions.saved)
		assert.True(t, sessions.saved.Journey(journey.FamilyRegistration).Contains(journey.PageFileUpload))
	})

	t.Run("disallowed move goes to the error page", func(t *testing.T) {
		sessions := &fakeSessions{}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, string(journey.PageFileUploadSubLanding), nil)

		Move(rr, req, sessions, discard(), journey.Registration, start,
			journey.At(journey.PageFileUploadSubLanding), journey.At(journey.PageFileUploadSubmissionConfirmation))

		assert.Equal(t, string(journey.PageError), rr.Header().Get("Location"))
		assert.Nil(t, sessions.saved)
	})

	t.Run("failed save goes to the error page", func(t *testing.T) {
		sessions := &fakeSessions{saveErr: errors.New("redis down")}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, string(journey.PageFileUploadSubLanding), nil)

		Move(rr, req, sessions, discard(), journey.Registration, start,
			journey.At(journey.PageFileUploadSubLanding), journey.At(journey.PageFileUpload))

		assert.Equal(t, string(journey.PageError), rr.Header().Get("Location"))
	})
}

func TestLoad(t *testing.T) {
	rr := httptest.NewRecorder()
	_, ok := Load(rr, httptest.NewRequest(http.MethodGet, "/", nil), &fakeSessions{getErr: errors.New("boom")}, discard())

	assert.False(t, ok)
	assert.Equal(t, string(journey.PageError), rr.Header().Get("Location"))
}

func TestSubmissionID(t *testing.T) {
	subID := id.SubmissionID(uuid.New())
	path := WithSubmissionID(string(journey.PageFileUploading), subID)
	assert.Equal(t, string(journey.PageFileUploading)+"?submissionId="+subID.String(), path)

	got, ok := SubmissionID(httptest.NewRequest(http.MethodGet, path, nil))
	require.True(t, ok)
	assert.Equal(t, subID, got)

	_, ok = SubmissionID(httptest.NewRequest(http.MethodGet, "/file-uploading?submissionId=nope", nil))
	assert.False(t, ok)
	_, ok = SubmissionID(httptest.NewRequest(http.MethodGet, "/file-uploading", nil))
	assert.False(t, ok)
}

func TestHereKeepsQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/scheme-members?search=acme&page=2", nil)

	assert.Equal(t, journey.Step{Page: journey.PageSchemeMembers, Path: "/scheme-members?search=acme&page=2"},
		Here(journey.PageSchemeMembers, req))
}
