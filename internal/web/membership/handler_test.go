package membership_test

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Schemes

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"schemereg/internal/accounts"
	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/web/membership"
	"schemereg/internal/web/membership/mocks"
	"schemereg/internal/web/webtest"
	id "schemereg/pkg/domain"
	"schemereg/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	env      *webtest.Env
	schemes  *mocks.MockSchemes
	scheme   session.ComplianceScheme
	selected id.SelectedSchemeID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.schemes = mocks.NewMockSchemes(ctrl)
	s.env = webtest.New(s.T())
	s.scheme = session.ComplianceScheme{ID: id.ComplianceSchemeID(uuid.New()), Name: "Green Scheme"}
	s.selected = id.SelectedSchemeID(uuid.New())

	membership.New(s.env.Sessions, s.schemes, s.env.Logger).Register(s.env.Router, s.env.Guard)
}

func (s *HandlerSuite) path(page journey.Page) string {
	return strings.Replace(string(page), "{id}", s.selected.String(), 1)
}

func (s *HandlerSuite) step(page journey.Page) journey.Step {
	return journey.Step{Page: page, Path: s.path(page)}
}

func (s *HandlerSuite) seed(setup func(*session.Session), steps ...journey.Step) {
	scheme := s.scheme
	sess := session.Session{}.WithJourney(journey.FamilySchemeMembership, journey.New(steps...))
	sess.Registration.SelectedComplianceScheme = &scheme
	if setup != nil {
		setup(&sess)
	}
	s.env.Seed(sess)
}

func (s *HandlerSuite) expectDetails() {
	s.schemes.EXPECT().GetSchemeMemberDetails(gomock.Any(), s.env.OrganisationID(), s.selected).
		Return(&accounts.SchemeMemberDetails{OrganisationName: "Tin Cans Ltd"}, nil).AnyTimes()
}

func (s *HandlerSuite) expectReasons() {
	s.schemes.EXPECT().GetReasonsForRemoval(gomock.Any()).Return([]accounts.ReasonForRemoval{
		{Code: "A"},
		{Code: "E", RequiresReason: true},
	}, nil).AnyTimes()
}

func (s *HandlerSuite) TestRequiresSelectedScheme() {
	s.env.Seed(session.Session{})

	rr := s.env.Get(string(journey.PageSchemeMembers))
	testutil.AssertRedirect(s.T(), rr, "/")
}

func (s *HandlerSuite) TestMembersEntersJourney() {
	s.seed(func(sess *session.Session) {
		sess.SchemeMembership.RemovedSchemeMember = "Old Member Ltd"
		sess.SchemeMembership.SelectedReasonForRemoval = "A"
	})
	s.schemes.EXPECT().GetSchemeMembers(gomock.Any(), s.env.OrganisationID(), s.scheme.ID,
		accounts.SchemeMembersQuery{Search: "tin", Page: 2, PageSize: 50}).
		Return(&accounts.SchemeMembers{TotalItems: 1, Items: []accounts.SchemeMember{{SelectedSchemeID: s.selected}}}, nil)

	rr := s.env.Get("/scheme-members?search=+tin+&page=2")
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	page := testutil.DecodePage(s.T(), rr)
	s.Equal(membership.ViewMembers, page.View)
	model := testutil.DecodeModel[map[string]any](s.T(), page)
	s.Equal("Old Member Ltd", model["removedMember"])

	sess := s.env.Session()
	s.Empty(sess.SchemeMembership.RemovedSchemeMember)
	s.Empty(sess.SchemeMembership.SelectedReasonForRemoval)
	s.True(sess.SchemeMembership.Journey.Contains(journey.PageSchemeMembers))
}

func (s *HandlerSuite) TestDetailsGuardedOnMemberList() {
	s.seed(nil)
	rr := s.env.Get(s.path(journey.PageSchemeMemberDetails))
	testutil.AssertRedirect(s.T(), rr, string(journey.PageSchemeMembers))

	s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers))
	s.expectDetails()
	rr = s.env.Get(s.path(journey.PageSchemeMemberDetails))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	page := testutil.DecodePage(s.T(), rr)
	s.Equal(membership.ViewMemberDetails, page.View)
	s.Equal(string(journey.PageSchemeMembers), page.BackLink)
	s.True(s.env.Session().SchemeMembership.Journey.Contains(journey.PageSchemeMemberDetails))
}

func (s *HandlerSuite) TestMissingMemberReturnsToList() {
	s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers))
	s.schemes.EXPECT().GetSchemeMemberDetails(gomock.Any(), gomock.Any(), s.selected).Return(nil, nil)

	rr := s.env.Get(s.path(journey.PageSchemeMemberDetails))
	testutil.AssertRedirect(s.T(), rr, string(journey.PageSchemeMembers))
}

func (s *HandlerSuite) TestReasonPost() {
	cases := []struct {
		name     string
		form     url.Values
		location string
		errors   bool
	}{
		{"missing reason", url.Values{}, "", true},
		{"unknown reason", url.Values{"reason_code": {"Z"}}, "", true},
		{"reason needing detail", url.Values{"reason_code": {"E"}}, s.path(journey.PageTellUsMore), false},
		{"plain reason", url.Values{"reason_code": {"A"}}, s.path(journey.PageConfirmRemoval), false},
	}
	s.expectDetails()
	s.expectReasons()
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers),
				s.step(journey.PageSchemeMemberDetails), s.step(journey.PageReasonForRemoval))

			rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageReasonForRemoval), tc.form))
			if tc.errors {
				testutil.AssertStatus(s.T(), rr, http.StatusOK)
				page := testutil.DecodePage(s.T(), rr)
				s.Equal(membership.ViewReason, page.View)
				s.Equal([]string{"Select a reason for removing the member"}, page.Errors["reason_code"])
				return
			}
			testutil.AssertRedirect(s.T(), rr, tc.location)
			s.Equal(tc.form.Get("reason_code"), s.env.Session().SchemeMembership.SelectedReasonForRemoval)
		})
	}
}

func (s *HandlerSuite) TestTellUsMore() {
	steps := []journey.Step{
		journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers),
		s.step(journey.PageSchemeMemberDetails), s.step(journey.PageReasonForRemoval), s.step(journey.PageTellUsMore),
	}
	withReason := func(sess *session.Session) { sess.SchemeMembership.SelectedReasonForRemoval = "E" }

	s.Run("too long", func() {
		s.seed(withReason, steps...)
		rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageTellUsMore), url.Values{"tell_us_more": {strings.Repeat("x", 201)}}))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		page := testutil.DecodePage(s.T(), rr)
		s.Equal([]string{"Reason must be 200 characters or less"}, page.Errors["tell_us_more"])
	})

	s.Run("recorded", func() {
		s.seed(withReason, steps...)
		rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageTellUsMore), url.Values{"tell_us_more": {"Left the scheme"}}))
		testutil.AssertRedirect(s.T(), rr, s.path(journey.PageConfirmRemoval))
		s.Equal("Left the scheme", s.env.Session().SchemeMembership.TellUsMore)
	})
}

func (s *HandlerSuite) confirmSteps() []journey.Step {
	return []journey.Step{
		journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers),
		s.step(journey.PageSchemeMemberDetails), s.step(journey.PageReasonForRemoval), s.step(journey.PageConfirmRemoval),
	}
}

func (s *HandlerSuite) TestConfirmRemovesMember() {
	s.seed(func(sess *session.Session) {
		sess.SchemeMembership.SelectedReasonForRemoval = "E"
		sess.SchemeMembership.TellUsMore = "Left the scheme"
	}, s.confirmSteps()...)
	s.schemes.EXPECT().RemoveSchemeMember(gomock.Any(), s.env.OrganisationID(), s.scheme.ID, s.selected, "E", "Left the scheme").
		Return(&accounts.RemovedMember{OrganisationName: "Tin Cans Ltd"}, nil)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageConfirmRemoval), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageSchemeMemberRemoved))

	sess := s.env.Session()
	s.Equal("Tin Cans Ltd", sess.SchemeMembership.RemovedSchemeMember)
	s.Empty(sess.SchemeMembership.SelectedReasonForRemoval)
	s.Empty(sess.SchemeMembership.TellUsMore)

	rr = s.env.Get(s.path(journey.PageSchemeMemberRemoved))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal(membership.ViewRemoved, testutil.DecodePage(s.T(), rr).View)
}

func (s *HandlerSuite) TestConfirmWithoutReasonGoesBack() {
	s.seed(nil, s.confirmSteps()...)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageConfirmRemoval), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageReasonForRemoval))
}

func (s *HandlerSuite) TestConfirmFailureShowsErrorPage() {
	s.seed(func(sess *session.Session) { sess.SchemeMembership.SelectedReasonForRemoval = "A" }, s.confirmSteps()...)
	s.schemes.EXPECT().RemoveSchemeMember(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "A", "").
		Return(nil, errors.New("down"))

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageConfirmRemoval), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, "/error")
	s.Equal("A", s.env.Session().SchemeMembership.SelectedReasonForRemoval)
}

func (s *HandlerSuite) TestConfirmForAnotherMemberIsRedirected() {
	s.seed(func(sess *session.Session) { sess.SchemeMembership.SelectedReasonForRemoval = "A" }, s.confirmSteps()...)
	other := strings.Replace(string(journey.PageConfirmRemoval), "{id}", uuid.NewString(), 1)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), other, url.Values{}))
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageConfirmRemoval))
	s.Equal("A", s.env.Session().SchemeMembership.SelectedReasonForRemoval)
}

func (s *HandlerSuite) TestReasonForAnotherMemberIsRedirected() {
	s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageSchemeMembers), s.step(journey.PageSchemeMemberDetails))
	other := strings.Replace(string(journey.PageReasonForRemoval), "{id}", uuid.NewString(), 1)

	rr := s.env.Get(other)
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageSchemeMemberDetails))
}
