// Package identity authenticates requests from a signed identity token and answers the
// authorization policies of the portal.
package identity

import (
	"context"
	"slices"
	"strings"

	id "schemereg/pkg/domain"
)

// Service roles.
const (
	RoleApprovedPerson  = "Approved Person"
	RoleDelegatedPerson = "Delegated Person"
	RoleBasicUser       = "Basic User"
)

// OrganisationTypeRegulator marks regulator organisations.
const OrganisationTypeRegulator = "Regulators"

// User is the authenticated user.
type User struct {
	ID            id.UserID      `json:"id"`
	Email         string         `json:"email"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	ServiceRole   string         `json:"serviceRole"`
	Organisations []Organisation `json:"organisations"`
}

// Organisation is an enrolment of the user.
type Organisation struct {
	ID                 id.OrganisationID `json:"id"`
	Name               string            `json:"name"`
	OrganisationRole   string            `json:"organisationRole"`
	OrganisationType   string            `json:"organisationType"`
	IsComplianceScheme bool              `json:"isComplianceScheme"`
	EnrolmentStatus    string            `json:"enrolmentStatus"`
	NationID           int               `json:"nationId"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Primary returns the organisation the user acts for. Users are enrolled in one
// organisation at a time; ok is false when they have none.
func (u User) Primary() (Organisation, bool) {
	if len(u.Organisations) == 0 {
		return Organisation{}, false
	}
	return u.Organisations[0], true
}

// IsRegulator reports whether the user acts for a regulator.
func (u User) IsRegulator() bool {
	org, ok := u.Primary()
	return ok && org.OrganisationType == OrganisationTypeRegulator
}

func (u User) hasRole(roles ...string) bool {
	return slices.Contains(roles, u.ServiceRole)
}

type userKey struct{}

// WithUser stores u in ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromContext returns the authenticated user, if any.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}
