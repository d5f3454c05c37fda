package compliance_test

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Accounts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"schemereg/internal/accounts"
	"schemereg/internal/cache"
	"schemereg/internal/compliance"
	"schemereg/internal/compliance/mocks"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	accounts *mocks.MockAccounts
	cache    *cache.InMemoryCache
	metrics  *compliance.Metrics
	logger   *slog.Logger

	orgID id.OrganisationID
	csID  id.ComplianceSchemeID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accounts = mocks.NewMockAccounts(s.ctrl)
	s.cache = cache.NewInMemory()
	s.metrics = compliance.NewMetrics(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.orgID = id.OrganisationID(uuid.New())
	s.csID = id.ComplianceSchemeID(uuid.New())
}

func (s *ServiceSuite) service(useCache bool) *compliance.Service {
	return compliance.NewService(s.accounts, s.cache, s.logger,
		compliance.WithSummaryCache(useCache, cache.Options{Sliding: 5 * time.Minute, Absolute: 30 * time.Minute}),
		compliance.WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) summary() *accounts.ComplianceSchemeSummary {
	return &accounts.ComplianceSchemeSummary{Name: "Acme Compliance", MemberCount: 12}
}

func (s *ServiceSuite) TestSummaryKey() {
	s.Equal("summary-"+s.orgID.String()+"-"+s.csID.String(), compliance.SummaryKey(s.orgID, s.csID))
}

func (s *ServiceSuite) TestCachedSummaryCallsAccountsOnce() {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(s.summary(), nil).Times(1)
	svc := s.service(true)

	for range 2 {
		got, err := svc.GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
		s.Require().NoError(err)
		s.Equal("Acme Compliance", got.Name)
		s.Equal(12, got.MemberCount)
	}
	s.Equal(1.0, promtest.ToFloat64(s.metrics.SummaryLookups.WithLabelValues("miss")))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.SummaryLookups.WithLabelValues("hit")))
}

func (s *ServiceSuite) TestDisabledCacheCallsAccountsEveryTime() {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(s.summary(), nil).Times(2)
	svc := s.service(false)

	for range 2 {
		_, err := svc.GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
		s.Require().NoError(err)
	}
	s.Equal(2.0, promtest.ToFloat64(s.metrics.SummaryLookups.WithLabelValues("bypass")))
}

func (s *ServiceSuite) TestNilCacheDisablesCaching() {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(s.summary(), nil).Times(2)
	svc := compliance.NewService(s.accounts, nil, s.logger, compliance.WithSummaryCache(true, cache.Options{}))

	for range 2 {
		_, err := svc.GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestConcurrentMissesShareOneCall() {
	release := make(chan struct{})
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).
		DoAndReturn(func(context.Context, id.OrganisationID, id.ComplianceSchemeID) (*accounts.ComplianceSchemeSummary, error) {
			<-release
			return s.summary(), nil
		}).MinTimes(1).MaxTimes(2)
	svc := s.service(true)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
			s.NoError(err)
			s.NotNil(got)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
}

func (s *ServiceSuite) TestNotFoundSummaryIsNotCached() {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(nil, nil).Times(2)
	svc := s.service(true)

	for range 2 {
		got, err := svc.GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
		s.Require().NoError(err)
		s.Nil(got)
	}
}

func (s *ServiceSuite) TestSummaryFailureIsUnavailable() {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(nil, errors.New("boom"))

	_, err := s.service(true).GetComplianceSchemeSummary(context.Background(), s.orgID, s.csID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ServiceSuite) cached(operatorID id.OrganisationID, csID id.ComplianceSchemeID) bool {
	var v accounts.ComplianceSchemeSummary
	ok, err := s.cache.Get(context.Background(), compliance.SummaryKey(operatorID, csID), &v)
	s.Require().NoError(err)
	return ok
}

func (s *ServiceSuite) prime(svc *compliance.Service, operatorID id.OrganisationID, csID id.ComplianceSchemeID) {
	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), operatorID, csID).Return(s.summary(), nil)
	_, err := svc.GetComplianceSchemeSummary(context.Background(), operatorID, csID)
	s.Require().NoError(err)
	s.Require().True(s.cached(operatorID, csID))
}

// Summaries are read by the scheme operator; producers change membership under their own
// organisation.
func (s *ServiceSuite) TestMembershipChangesInvalidateOperatorSummary() {
	ctx := context.Background()
	operator := s.orgID
	producer := id.OrganisationID(uuid.New())
	selected := id.SelectedSchemeID(uuid.New())
	current := accounts.ProducerComplianceScheme{
		SelectedSchemeID:           selected,
		ComplianceSchemeID:         s.csID,
		ComplianceSchemeOperatorID: operator,
	}
	otherOperator := id.OrganisationID(uuid.New())
	otherScheme := id.ComplianceSchemeID(uuid.New())

	s.Run("operator removes a member", func() {
		svc := s.service(true)
		s.prime(svc, operator, s.csID)
		s.accounts.EXPECT().RemoveSchemeMember(gomock.Any(), operator, selected, "A", "").
			Return(&accounts.RemovedMember{OrganisationName: "Member Ltd"}, nil)

		_, err := svc.RemoveSchemeMember(ctx, operator, s.csID, selected, "A", "")
		s.Require().NoError(err)
		s.False(s.cached(operator, s.csID))
	})

	s.Run("producer joins a scheme", func() {
		svc := s.service(true)
		s.prime(svc, operator, s.csID)
		s.accounts.EXPECT().SelectComplianceScheme(gomock.Any(), producer, s.csID).
			Return(&accounts.SelectedScheme{ID: selected}, nil)
		s.accounts.EXPECT().GetProducerComplianceScheme(gomock.Any(), producer).Return(&current, nil)

		_, err := svc.SelectComplianceScheme(ctx, producer, s.csID)
		s.Require().NoError(err)
		s.False(s.cached(operator, s.csID))
	})

	s.Run("producer moves scheme", func() {
		svc := s.service(true)
		s.prime(svc, operator, s.csID)
		s.prime(svc, otherOperator, otherScheme)
		s.accounts.EXPECT().UpdateComplianceScheme(gomock.Any(), producer, selected, otherScheme).
			Return(&accounts.SelectedScheme{ID: selected}, nil)
		s.accounts.EXPECT().GetProducerComplianceScheme(gomock.Any(), producer).Return(&accounts.ProducerComplianceScheme{
			SelectedSchemeID:           selected,
			ComplianceSchemeID:         otherScheme,
			ComplianceSchemeOperatorID: otherOperator,
		}, nil)

		_, err := svc.UpdateComplianceScheme(ctx, producer, current, otherScheme)
		s.Require().NoError(err)
		s.False(s.cached(operator, s.csID))
		s.False(s.cached(otherOperator, otherScheme))
	})

	s.Run("producer leaves a scheme", func() {
		svc := s.service(true)
		s.prime(svc, operator, s.csID)
		s.accounts.EXPECT().StopComplianceScheme(gomock.Any(), producer, selected).Return(nil)

		s.Require().NoError(svc.StopComplianceScheme(ctx, producer, current))
		s.False(s.cached(operator, s.csID))
	})
}

func (s *ServiceSuite) TestOperatorLookupFailureLeavesSummaryToExpire() {
	ctx := context.Background()
	producer := id.OrganisationID(uuid.New())
	svc := s.service(true)
	s.prime(svc, s.orgID, s.csID)
	s.accounts.EXPECT().SelectComplianceScheme(gomock.Any(), producer, s.csID).
		Return(&accounts.SelectedScheme{ID: id.SelectedSchemeID(uuid.New())}, nil)
	s.accounts.EXPECT().GetProducerComplianceScheme(gomock.Any(), producer).Return(nil, errors.New("down"))

	_, err := svc.SelectComplianceScheme(ctx, producer, s.csID)
	s.Require().NoError(err)
	s.True(s.cached(s.orgID, s.csID))
}

func (s *ServiceSuite) TestFailedMutationKeepsSummary() {
	ctx := context.Background()
	selected := id.SelectedSchemeID(uuid.New())
	svc := s.service(true)

	s.accounts.EXPECT().GetComplianceSchemeSummary(gomock.Any(), s.orgID, s.csID).Return(s.summary(), nil).Times(1)
	s.accounts.EXPECT().RemoveSchemeMember(gomock.Any(), s.orgID, selected, "A", "").Return(nil, errors.New("boom"))

	_, err := svc.GetComplianceSchemeSummary(ctx, s.orgID, s.csID)
	s.Require().NoError(err)
	_, err = svc.RemoveSchemeMember(ctx, s.orgID, s.csID, selected, "A", "")
	s.Require().True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	_, err = svc.GetComplianceSchemeSummary(ctx, s.orgID, s.csID)
	s.Require().NoError(err)
}
