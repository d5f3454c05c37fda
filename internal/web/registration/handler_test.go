package registration_test

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Submissions,Uploads

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"schemereg/internal/journey"
	"schemereg/internal/session"
	"schemereg/internal/submission"
	"schemereg/internal/upload"
	"schemereg/internal/web/registration"
	"schemereg/internal/web/registration/mocks"
	"schemereg/internal/web/webtest"
	id "schemereg/pkg/domain"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/testutil"
)

const period = "January to December 2026"

type HandlerSuite struct {
	suite.Suite
	env         *webtest.Env
	submissions *mocks.MockSubmissions
	uploads     *mocks.MockUploads
	subID       id.SubmissionID
	fileID      id.FileID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.submissions = mocks.NewMockSubmissions(ctrl)
	s.uploads = mocks.NewMockUploads(ctrl)
	s.env = webtest.New(s.T())
	s.subID = id.SubmissionID(uuid.New())
	s.fileID = id.FileID(uuid.New())
	s.submissions.EXPECT().Periods().Return(submission.Periods{Registration: []submission.Period{
		{DataPeriod: period, Deadline: time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC)},
	}}).AnyTimes()

	registration.New(s.env.Sessions, s.submissions, s.uploads, s.env.Logger).Register(s.env.Router, s.env.Guard)
}

func (s *HandlerSuite) withID(page journey.Page) string {
	return string(page) + "?submissionId=" + s.subID.String()
}

func (s *HandlerSuite) step(page journey.Page) journey.Step {
	return journey.Step{Page: page, Path: s.withID(page)}
}

func (s *HandlerSuite) seed(setup func(*session.Session), steps ...journey.Step) {
	sess := session.Session{}.WithJourney(journey.FamilyRegistration, journey.New(steps...))
	sess.Registration.SubmissionPeriod = period
	if setup != nil {
		setup(&sess)
	}
	s.env.Seed(sess)
}

func (s *HandlerSuite) TestSubLandingPostRoutesExistingSubmission() {
	cases := []struct {
		name     string
		status   submission.Status
		withSub  bool
		location string
		update   bool
	}{
		{"new period uploads company details", submission.StatusNotStarted, false, string(journey.PageFileUploadCompanyDetails), false},
		{"validated files go to review", submission.StatusFileUploaded, true, s.withID(journey.PageReviewOrganisationData), true},
		{"submitted period re-uploads", submission.StatusSubmittedToRegulator, true, s.withID(journey.PageFileUploadCompanyDetails), true},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageCompanyDetailsSubLanding))
			ps := submission.PeriodStatus{Period: submission.Period{DataPeriod: period}, Status: tc.status}
			if tc.withSub {
				subID := s.subID
				ps.SubmissionID = &subID
			}
			s.submissions.EXPECT().PeriodStatuses(gomock.Any(), submission.TypeRegistration, gomock.Nil()).
				Return([]submission.PeriodStatus{ps}, nil)

			rr := s.env.Do(testutil.NewFormRequest(s.T(), string(journey.PageCompanyDetailsSubLanding), url.Values{"data_period": {period}}))
			testutil.AssertRedirect(s.T(), rr, tc.location)
			s.Equal(tc.update, s.env.Session().Registration.IsUpdateJourney)
		})
	}
}

func (s *HandlerSuite) TestCompanyDetailsUploadMintsRegistrationSet() {
	s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageCompanyDetailsSubLanding), journey.At(journey.PageFileUploadCompanyDetails))

	var first id.RegistrationSetID
	s.uploads.EXPECT().StreamFile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req upload.Request, _ modelstate.ModelState) (id.SubmissionID, error) {
			s.Equal(submission.TypeRegistration, req.Metadata.SubmissionType)
			s.Equal(submission.SubTypeCompanyDetails, req.Metadata.SubmissionSubType)
			s.Require().NotNil(req.Metadata.RegistrationSetID)
			s.Nil(req.Metadata.OriginalSubmissionID)
			first = *req.Metadata.RegistrationSetID
			return s.subID, nil
		})

	rr := s.env.Do(testutil.NewMultipartRequest(s.T(), string(journey.PageFileUploadCompanyDetails), "file", "org.csv", []byte("a")))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageFileUploadingCompanyDetails))

	stored, ok := s.env.Session().Registration.LatestRegistrationSet[period]
	s.Require().True(ok)
	s.Equal(uuid.UUID(first), stored)
}

func (s *HandlerSuite) TestCompanyDetailsReuploadKeepsSetAndOriginal() {
	setID := uuid.New()
	s.seed(func(sess *session.Session) {
		sess.Registration = sess.Registration.WithRegistrationSet(period, setID)
	}, journey.At(journey.PageLanding), s.step(journey.PageFileUploadCompanyDetails))

	s.uploads.EXPECT().StreamFile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req upload.Request, _ modelstate.ModelState) (id.SubmissionID, error) {
			s.Equal(id.RegistrationSetID(setID), *req.Metadata.RegistrationSetID)
			s.Require().NotNil(req.Metadata.OriginalSubmissionID)
			s.Equal(s.subID, *req.Metadata.OriginalSubmissionID)
			return s.subID, nil
		})

	rr := s.env.Do(testutil.NewMultipartRequest(s.T(), s.withID(journey.PageFileUploadCompanyDetails), "file", "org.csv", []byte("a")))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageFileUploadingCompanyDetails))
}

func (s *HandlerSuite) TestCompanyDetailsShowsPreviousErrors() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageFileUploadCompanyDetails))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).
		Return(&submission.RegistrationSubmission{ID: s.subID, Errors: []string{"801", "802"}}, nil)

	rr := s.env.Get(s.withID(journey.PageFileUploadCompanyDetails))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	page := testutil.DecodePage(s.T(), rr)
	s.Equal(registration.ViewCompanyDetails, page.View)
	s.Equal([]string{"801", "802"}, page.Errors["file"])
}

func (s *HandlerSuite) TestUploadingRoutesToNextFile() {
	cases := []struct {
		name string
		sub  submission.RegistrationSubmission
		page journey.Page
	}{
		{
			name: "errors return to company details",
			sub:  submission.RegistrationSubmission{CompanyDetailsFileName: "org.csv", Errors: []string{"801"}},
			page: journey.PageFileUploadCompanyDetails,
		},
		{
			name: "brands file required",
			sub:  submission.RegistrationSubmission{CompanyDetailsFileName: "org.csv", CompanyDetailsDataComplete: true, RequiresBrandsFile: true},
			page: journey.PageFileUploadBrands,
		},
		{
			name: "partnerships file required",
			sub: submission.RegistrationSubmission{
				CompanyDetailsFileName: "org.csv", CompanyDetailsDataComplete: true,
				RequiresBrandsFile: true, BrandsFileName: "brands.csv", BrandsDataComplete: true,
				RequiresPartnershipsFile: true,
			},
			page: journey.PageFileUploadPartnerships,
		},
		{
			name: "complete set goes to review",
			sub:  submission.RegistrationSubmission{CompanyDetailsFileName: "org.csv", CompanyDetailsDataComplete: true},
			page: journey.PageReviewOrganisationData,
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageFileUploadCompanyDetails), s.step(journey.PageFileUploadingCompanyDetails))
			sub := tc.sub
			sub.ID = s.subID
			s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(&sub, nil)

			rr := s.env.Get(s.withID(journey.PageFileUploadingCompanyDetails))
			testutil.AssertRedirect(s.T(), rr, s.withID(tc.page))
			s.True(s.env.Session().Registration.Journey.Contains(tc.page))
		})
	}
}

func (s *HandlerSuite) TestUploadingWhileProcessing() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageFileUploadingCompanyDetails))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).
		Return(&submission.RegistrationSubmission{ID: s.subID, CompanyDetailsFileName: "org.csv"}, nil)

	rr := s.env.Get(s.withID(journey.PageFileUploadingCompanyDetails))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal(registration.ViewUploading, testutil.DecodePage(s.T(), rr).View)
}

func (s *HandlerSuite) TestBrandsUploadTargetsSubmission() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageFileUploadBrands))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).
		Return(&submission.RegistrationSubmission{ID: s.subID}, nil)
	s.uploads.EXPECT().StreamFile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req upload.Request, _ modelstate.ModelState) (id.SubmissionID, error) {
			s.Equal(submission.SubTypeBrands, req.Metadata.SubmissionSubType)
			s.Require().NotNil(req.Metadata.SubmissionID)
			s.Equal(s.subID, *req.Metadata.SubmissionID)
			return s.subID, nil
		})

	rr := s.env.Do(testutil.NewMultipartRequest(s.T(), s.withID(journey.PageFileUploadBrands), "file", "brands.csv", []byte("a")))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageFileUploadingCompanyDetails))
}

func (s *HandlerSuite) validSubmission() *submission.RegistrationSubmission {
	return &submission.RegistrationSubmission{
		ID:                         s.subID,
		SubmissionPeriod:           period,
		CompanyDetailsFileName:     "org.csv",
		CompanyDetailsDataComplete: true,
		ValidationPass:             true,
		LastUploadedValidFiles: &submission.RegistrationFiles{
			CompanyDetailsFileName: "org.csv",
			CompanyDetailsFileID:   s.fileID,
		},
	}
}

func (s *HandlerSuite) TestReviewStoresFile() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageReviewOrganisationData))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(s.validSubmission(), nil).Times(2)

	rr := s.env.Get(s.withID(journey.PageReviewOrganisationData))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	sess := s.env.Session()
	s.Equal(s.fileID, sess.Registration.FileID)
	s.Equal(s.subID, sess.Registration.SubmissionID)

	rr = s.env.Do(testutil.NewFormRequest(s.T(), s.withID(journey.PageReviewOrganisationData), url.Values{}))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageDeclarationWithFullName))
}

func (s *HandlerSuite) TestDeclarationRequiresFullName() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageDeclarationWithFullName))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(s.validSubmission(), nil)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.withID(journey.PageDeclarationWithFullName), url.Values{}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	page := testutil.DecodePage(s.T(), rr)
	s.Equal(registration.ViewDeclaration, page.View)
	s.Equal([]string{"Enter your full name"}, page.Errors["full_name"])
}

func (s *HandlerSuite) TestDeclarationSubmitsAndClosesSet() {
	setID := uuid.New()
	s.seed(func(sess *session.Session) {
		sess.Registration = sess.Registration.WithRegistrationSet(period, setID)
	}, journey.At(journey.PageLanding), s.step(journey.PageDeclarationWithFullName))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(s.validSubmission(), nil)
	s.submissions.EXPECT().Submit(gomock.Any(), s.subID, s.fileID, "Grace Hopper").Return(nil)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.withID(journey.PageDeclarationWithFullName), url.Values{"full_name": {"Grace Hopper"}}))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageCompanyDetailsConfirmation))

	_, kept := s.env.Session().Registration.LatestRegistrationSet[period]
	s.False(kept)
}

func (s *HandlerSuite) TestDeclarationFailureKeepsSet() {
	setID := uuid.New()
	s.seed(func(sess *session.Session) {
		sess.Registration = sess.Registration.WithRegistrationSet(period, setID)
	}, journey.At(journey.PageLanding), s.step(journey.PageDeclarationWithFullName))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(s.validSubmission(), nil)
	s.submissions.EXPECT().Submit(gomock.Any(), s.subID, s.fileID, "Grace Hopper").Return(errors.New("down"))

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.withID(journey.PageDeclarationWithFullName), url.Values{"full_name": {"Grace Hopper"}}))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageCompanyDetailsSubmissionFailed))

	stored, kept := s.env.Session().Registration.LatestRegistrationSet[period]
	s.True(kept)
	s.Equal(setID, stored)
}

func (s *HandlerSuite) TestReviewNotReachableWithoutUpload() {
	s.seed(nil, journey.At(journey.PageLanding), journey.At(journey.PageCompanyDetailsSubLanding))

	rr := s.env.Get(s.withID(journey.PageReviewOrganisationData))
	testutil.AssertRedirect(s.T(), rr, string(journey.PageCompanyDetailsSubLanding))
}

func (s *HandlerSuite) TestDeclarationIgnoresFileOfAnotherSubmission() {
	s.seed(func(sess *session.Session) {
		sess.Registration.SubmissionID = id.SubmissionID(uuid.New())
		sess.Registration.FileID = id.FileID(uuid.New())
	}, journey.At(journey.PageLanding), s.step(journey.PageDeclarationWithFullName))
	s.submissions.EXPECT().GetRegistrationSubmission(gomock.Any(), s.subID).Return(s.validSubmission(), nil)
	s.submissions.EXPECT().Submit(gomock.Any(), s.subID, s.fileID, "Grace Hopper").Return(nil)

	rr := s.env.Do(testutil.NewFormRequest(s.T(), s.withID(journey.PageDeclarationWithFullName), url.Values{"full_name": {"Grace Hopper"}}))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageCompanyDetailsConfirmation))
}

func (s *HandlerSuite) TestDeclarationForAnotherSubmissionIsRedirected() {
	s.seed(nil, journey.At(journey.PageLanding), s.step(journey.PageDeclarationWithFullName))

	rr := s.env.Do(testutil.NewFormRequest(s.T(), string(journey.PageDeclarationWithFullName)+"?submissionId="+uuid.NewString(), url.Values{"full_name": {"Grace Hopper"}}))
	testutil.AssertRedirect(s.T(), rr, s.withID(journey.PageDeclarationWithFullName))
}
