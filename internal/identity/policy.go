package identity

// Policy decides whether a user may use a group of pages.
type Policy struct {
	Name  string
	Allow func(User) bool
}

var (
	// EprNonRegulatorRolesPolicy admits every user who does not act for a regulator.
	EprNonRegulatorRolesPolicy = Policy{
		Name:  "EprNonRegulatorRolesPolicy",
		Allow: func(u User) bool { return !u.IsRegulator() },
	}

	// EprFileUploadPolicy admits non-regulator users with a role that may upload data.
	EprFileUploadPolicy = Policy{
		Name: "EprFileUploadPolicy",
		Allow: func(u User) bool {
			return !u.IsRegulator() && u.hasRole(RoleApprovedPerson, RoleDelegatedPerson, RoleBasicUser)
		},
	}

	// EprSelectSchemePolicy admits approved and delegated persons, who may change the
	// compliance scheme of their organisation.
	EprSelectSchemePolicy = Policy{
		Name: "EprSelectSchemePolicy",
		Allow: func(u User) bool {
			return !u.IsRegulator() && u.hasRole(RoleApprovedPerson, RoleDelegatedPerson)
		},
	}
)
