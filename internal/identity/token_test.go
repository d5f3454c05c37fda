package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
)

func testUser() User {
	return User{
		ID:          id.UserID(uuid.New()),
		Email:       "ap@example.com",
		FirstName:   "Ada",
		LastName:    "Person",
		ServiceRole: RoleApprovedPerson,
		Organisations: []Organisation{{
			ID:               id.OrganisationID(uuid.New()),
			Name:             "Acme Packaging",
			OrganisationRole: "Producer",
		}},
	}
}

func Test_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-signing-key", "schemereg")
	u := testUser()

	token, err := svc.Issue(u, time.Hour)
	require.NoError(t, err)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Acme Packaging", got.Organisations[0].Name)
}

func Test_Validate_Expired(t *testing.T) {
	svc := NewTokenService("test-signing-key", "schemereg")
	token, err := svc.Issue(testUser(), -time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func Test_Validate_WrongKeyOrIssuer(t *testing.T) {
	token, err := NewTokenService("other-key", "schemereg").Issue(testUser(), time.Hour)
	require.NoError(t, err)
	_, err = NewTokenService("test-signing-key", "schemereg").Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	token, err = NewTokenService("test-signing-key", "someone-else").Issue(testUser(), time.Hour)
	require.NoError(t, err)
	_, err = NewTokenService("test-signing-key", "schemereg").Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Validate_Garbage(t *testing.T) {
	_, err := NewTokenService("k", "schemereg").Validate("not-a-token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Policies(t *testing.T) {
	regulator := testUser()
	regulator.Organisations[0].OrganisationType = OrganisationTypeRegulator

	basic := testUser()
	basic.ServiceRole = RoleBasicUser

	noRole := testUser()
	noRole.ServiceRole = ""

	cases := []struct {
		name   string
		policy Policy
		user   User
		want   bool
	}{
		{"approved person may upload", EprFileUploadPolicy, testUser(), true},
		{"basic user may upload", EprFileUploadPolicy, basic, true},
		{"no role may not upload", EprFileUploadPolicy, noRole, false},
		{"regulator may not upload", EprFileUploadPolicy, regulator, false},
		{"approved person may select scheme", EprSelectSchemePolicy, testUser(), true},
		{"basic user may not select scheme", EprSelectSchemePolicy, basic, false},
		{"non regulator admitted", EprNonRegulatorRolesPolicy, noRole, true},
		{"regulator refused", EprNonRegulatorRolesPolicy, regulator, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.policy.Allow(tc.user))
		})
	}
}
