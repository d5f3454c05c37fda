package testutil

import (
	"net/http"

	id "schemereg/pkg/domain"
	"schemereg/pkg/requestcontext"
)

// WithUser adds user and organisation ids to the request context, the state the identity
// middleware leaves behind for an authenticated request.
func WithUser(req *http.Request, userID id.UserID, orgID id.OrganisationID) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithOrganisationID(ctx, orgID)
	return req.WithContext(ctx)
}
