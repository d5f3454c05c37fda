package nomination_test

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Nominations

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
	"schemereg/internal/web/nomination"
	"schemereg/internal/web/nomination/mocks"
	"schemereg/internal/web/webtest"
	id "schemereg/pkg/domain"
	"schemereg/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	env         *webtest.Env
	nominations *mocks.MockNominations
	enrolment   id.EnrolmentID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.nominations = mocks.NewMockNominations(ctrl)
	s.env = webtest.New(s.T())
	s.enrolment = id.EnrolmentID(uuid.New())

	nomination.New(s.env.Sessions, s.nominations, s.env.Logger).Register(s.env.Router, s.env.Guard)
}

func (s *HandlerSuite) path(page journey.Page) string {
	return strings.Replace(string(page), "{enrolmentId}", s.enrolment.String(), 1)
}

func (s *HandlerSuite) step(page journey.Page) journey.Step {
	return journey.Step{Page: page, Path: s.path(page)}
}

func (s *HandlerSuite) seed(n session.NominatedDelegatedPersonSession, steps ...journey.Step) {
	n.Journey = journey.New(steps...)
	s.env.Seed(session.Session{NominatedDelegatedPerson: n})
}

func (s *HandlerSuite) TestTelephoneStartsJourney() {
	s.nominations.EXPECT().GetNominationRequest(gomock.Any(), s.enrolment).Return(&accounts.NominationRequest{
		OrganisationName:     "Acme Packaging Ltd",
		NominatorFullName:    "Alan Turing",
		NominatorServiceRole: "Approved Person",
		NomineeFullName:      "Ada Person",
	}, nil)

	rr := s.env.Get(s.path(journey.PageNominationTelephoneNumber))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal(nomination.ViewTelephone, testutil.DecodePage(s.T(), rr).View)

	n := s.env.Session().NominatedDelegatedPerson
	s.Equal("Ada Person", n.NomineeFullName)
	s.Equal("Alan Turing", n.NominatorFullName)
	s.Equal(2, n.Journey.Len())
	s.True(n.Journey.Contains(journey.PageNominationTelephoneNumber))
}

func (s *HandlerSuite) TestUnknownNominationGoesHome() {
	s.nominations.EXPECT().GetNominationRequest(gomock.Any(), s.enrolment).Return(nil, nil)

	rr := s.env.Get(s.path(journey.PageNominationTelephoneNumber))
	testutil.AssertRedirect(s.T(), rr, "/")
}

func (s *HandlerSuite) TestTelephonePost() {
	cases := []struct {
		name   string
		number string
		err    string
	}{
		{"missing", "", "Enter a telephone number"},
		{"too short", "01632", "Enter a telephone number, like 01632 960 001 or 07700 900 982"},
		{"too long", strings.Repeat("0", 21), "Telephone number must be 20 characters or less"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.seed(session.NominatedDelegatedPersonSession{}, journey.At(journey.PageLanding), s.step(journey.PageNominationTelephoneNumber))
			rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageNominationTelephoneNumber), url.Values{"telephone_number": {tc.number}}))
			testutil.AssertStatus(s.T(), rr, http.StatusOK)
			s.Equal([]string{tc.err}, testutil.DecodePage(s.T(), rr).Errors["telephone_number"])
		})
	}

	s.Run("valid", func() {
		s.seed(session.NominatedDelegatedPersonSession{}, journey.At(journey.PageLanding), s.step(journey.PageNominationTelephoneNumber))
		rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageNominationTelephoneNumber), url.Values{"telephone_number": {"01632 960 001"}}))
		testutil.AssertRedirect(s.T(), rr, s.path(journey.PageNominationConfirmPermission))
		s.Equal("01632 960 001", s.env.Session().NominatedDelegatedPerson.TelephoneNumber)
	})
}

func (s *HandlerSuite) TestDeclarationGuarded() {
	s.seed(session.NominatedDelegatedPersonSession{}, journey.At(journey.PageLanding), s.step(journey.PageNominationTelephoneNumber))

	rr := s.env.Get(s.path(journey.PageNominationDeclaration))
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageNominationTelephoneNumber))
}

func (s *HandlerSuite) declarationSteps() []journey.Step {
	return []journey.Step{
		journey.At(journey.PageLanding),
		s.step(journey.PageNominationTelephoneNumber),
		s.step(journey.PageNominationConfirmPermission),
		s.step(journey.PageNominationDeclaration),
	}
}

func (s *HandlerSuite) TestDeclarationAcceptsNomination() {
	s.seed(session.NominatedDelegatedPersonSession{NomineeFullName: "Ada Person", TelephoneNumber: "01632 960 001"}, s.declarationSteps()...)
	s.nominations.EXPECT().AcceptNomination(gomock.Any(), s.env.OrganisationID(), s.enrolment, accounts.AcceptNominationRequest{
		Telephone:          "01632 960 001",
		NomineeDeclaration: "Ada Person",
	}).Return(nil)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageNominationDeclaration), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, "/")

	n := s.env.Session().NominatedDelegatedPerson
	s.Empty(n.TelephoneNumber)
	s.True(n.Journey.IsEmpty())
}

func (s *HandlerSuite) TestDeclarationFailureKeepsJourney() {
	s.seed(session.NominatedDelegatedPersonSession{NomineeFullName: "Ada Person", TelephoneNumber: "01632 960 001"}, s.declarationSteps()...)
	s.nominations.EXPECT().AcceptNomination(gomock.Any(), gomock.Any(), s.enrolment, gomock.Any()).Return(errors.New("down"))

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.path(journey.PageNominationDeclaration), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, "/error")
	s.Equal("01632 960 001", s.env.Session().NominatedDelegatedPerson.TelephoneNumber)
}

func (s *HandlerSuite) TestDeclarationForAnotherEnrolmentIsRedirected() {
	s.seed(session.NominatedDelegatedPersonSession{NomineeFullName: "Ada Person", TelephoneNumber: "01632 960 001"}, s.declarationSteps()...)
	other := strings.Replace(string(journey.PageNominationDeclaration), "{enrolmentId}", uuid.NewString(), 1)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), other, url.Values{}))
	testutil.AssertRedirect(s.T(), rr, s.path(journey.PageNominationDeclaration))
}
