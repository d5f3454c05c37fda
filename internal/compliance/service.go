// Package compliance is the compliance scheme service used by the landing and membership
// pages. Scheme summaries are read through a shared cache; every call that changes a
// scheme's membership removes the affected summary.
package compliance

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"schemereg/internal/accounts"
	"schemereg/internal/cache"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/requestcontext"
)

// Accounts is the part of the Accounts facade this service needs.
type Accounts interface {
	GetProducerComplianceScheme(ctx context.Context, producerID id.OrganisationID) (*accounts.ProducerComplianceScheme, error)
	GetOperatorComplianceSchemes(ctx context.Context, operatorID id.OrganisationID) ([]accounts.ComplianceScheme, error)
	GetAllComplianceSchemes(ctx context.Context) ([]accounts.ComplianceScheme, error)
	GetComplianceSchemeSummary(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.ComplianceSchemeSummary, error)
	GetSchemeMembers(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, q accounts.SchemeMembersQuery) (*accounts.SchemeMembers, error)
	GetSchemeMemberDetails(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) (*accounts.SchemeMemberDetails, error)
	GetReasonsForRemoval(ctx context.Context) ([]accounts.ReasonForRemoval, error)
	RemoveSchemeMember(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID, reasonCode, tellUsMore string) (*accounts.RemovedMember, error)
	SelectComplianceScheme(ctx context.Context, producerID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error)
	UpdateComplianceScheme(ctx context.Context, producerID id.OrganisationID, current id.SelectedSchemeID, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error)
	StopComplianceScheme(ctx context.Context, producerID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) error
	GetNotifications(ctx context.Context, orgID id.OrganisationID) ([]accounts.Notification, error)
	GetNominationRequest(ctx context.Context, enrolmentID id.EnrolmentID) (*accounts.NominationRequest, error)
	AcceptNomination(ctx context.Context, orgID id.OrganisationID, enrolmentID id.EnrolmentID, req accounts.AcceptNominationRequest) error
}

// Service wraps the Accounts facade.
type Service struct {
	accounts Accounts
	cache    cache.Cache
	logger   *slog.Logger
	metrics  *Metrics

	useSummaryCache bool
	cacheOptions    cache.Options
	group           singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithSummaryCache enables read-through caching of scheme summaries.
func WithSummaryCache(enabled bool, opts cache.Options) Option {
	return func(s *Service) {
		s.useSummaryCache = enabled
		s.cacheOptions = opts
	}
}

// WithMetrics records cache lookups.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService builds a Service. c may be nil when the summary cache is disabled.
func NewService(accts Accounts, c cache.Cache, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{accounts: accts, cache: c, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.useSummaryCache = false
	}
	return s
}

// SummaryKey is the cache key of a scheme summary as seen by an organisation.
func SummaryKey(orgID id.OrganisationID, csID id.ComplianceSchemeID) string {
	return fmt.Sprintf("summary-%s-%s", orgID, csID)
}

// GetComplianceSchemeSummary returns the summary of csID, from the cache when enabled.
// Concurrent misses for the same key share one downstream call.
func (s *Service) GetComplianceSchemeSummary(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.ComplianceSchemeSummary, error) {
	if !s.useSummaryCache {
		s.metrics.incLookup(resultBypass)
		return s.fetchSummary(ctx, orgID, csID)
	}

	key := SummaryKey(orgID, csID)
	var cached accounts.ComplianceSchemeSummary
	ok, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WarnContext(ctx, "summary cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}
	if ok {
		s.metrics.incLookup(resultHit)
		return &cached, nil
	}
	s.metrics.incLookup(resultMiss)

	v, err, _ := s.group.Do(key, func() (any, error) {
		summary, err := s.fetchSummary(ctx, orgID, csID)
		if err != nil || summary == nil {
			return summary, err
		}
		if err := s.cache.Set(ctx, key, summary, s.cacheOptions); err != nil {
			s.logger.WarnContext(ctx, "summary cache write failed",
				"request_id", requestcontext.RequestID(ctx),
				"key", key,
				"error", err,
			)
		}
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	summary, _ := v.(*accounts.ComplianceSchemeSummary)
	return summary, nil
}

func (s *Service) fetchSummary(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.ComplianceSchemeSummary, error) {
	summary, err := s.accounts.GetComplianceSchemeSummary(ctx, orgID, csID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get compliance scheme summary",
			"organisation_id", orgID, "compliance_scheme_id", csID)
	}
	return summary, nil
}

// invalidate removes the summaries of the given schemes as cached for their operator orgID.
// Failures are logged and otherwise ignored; the entry still expires on its own.
func (s *Service) invalidate(ctx context.Context, cause string, orgID id.OrganisationID, schemes ...id.ComplianceSchemeID) {
	if s.cache == nil || orgID.IsNil() {
		return
	}
	for _, csID := range schemes {
		if csID.IsNil() {
			continue
		}
		key := SummaryKey(orgID, csID)
		if err := s.cache.Remove(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "summary cache invalidation failed",
				"request_id", requestcontext.RequestID(ctx),
				"key", key,
				"error", err,
			)
			continue
		}
		s.metrics.incInvalidation(cause)
	}
}

// RemoveSchemeMember removes a member from the operator's scheme csID.
func (s *Service) RemoveSchemeMember(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, selectedSchemeID id.SelectedSchemeID, reasonCode, tellUsMore string) (*accounts.RemovedMember, error) {
	removed, err := s.accounts.RemoveSchemeMember(ctx, orgID, selectedSchemeID, reasonCode, tellUsMore)
	if err != nil {
		return nil, s.downstream(ctx, err, "remove scheme member",
			"organisation_id", orgID, "selected_scheme_id", selectedSchemeID)
	}
	s.invalidate(ctx, "remove_member", orgID, csID)
	return removed, nil
}

// SelectComplianceScheme links a producer without a scheme to csID and invalidates the
// summary cached for the scheme's operator.
func (s *Service) SelectComplianceScheme(ctx context.Context, producerID id.OrganisationID, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error) {
	selected, err := s.accounts.SelectComplianceScheme(ctx, producerID, csID)
	if err != nil {
		return nil, s.downstream(ctx, err, "select compliance scheme",
			"organisation_id", producerID, "compliance_scheme_id", csID)
	}
	s.invalidate(ctx, "select", s.joinedOperator(ctx, producerID, csID), csID)
	return selected, nil
}

// joinedOperator looks up the operator of the scheme producerID has just joined. Summaries are
// cached per operator, and the producer's side of the call does not name it. The nil id is
// returned when the lookup fails.
func (s *Service) joinedOperator(ctx context.Context, producerID id.OrganisationID, csID id.ComplianceSchemeID) id.OrganisationID {
	if s.cache == nil {
		return id.OrganisationID{}
	}
	joined, err := s.accounts.GetProducerComplianceScheme(ctx, producerID)
	if err != nil {
		s.logger.WarnContext(ctx, "scheme operator lookup failed, summary left to expire",
			"request_id", requestcontext.RequestID(ctx),
			"organisation_id", producerID,
			"compliance_scheme_id", csID,
			"error", err,
		)
		return id.OrganisationID{}
	}
	if joined == nil || joined.ComplianceSchemeID != csID {
		return id.OrganisationID{}
	}
	return joined.ComplianceSchemeOperatorID
}

// UpdateComplianceScheme moves a producer from its current scheme to csID. Summaries of both
// schemes are invalidated under their operators.
func (s *Service) UpdateComplianceScheme(ctx context.Context, producerID id.OrganisationID, current accounts.ProducerComplianceScheme, csID id.ComplianceSchemeID) (*accounts.SelectedScheme, error) {
	selected, err := s.accounts.UpdateComplianceScheme(ctx, producerID, current.SelectedSchemeID, csID)
	if err != nil {
		return nil, s.downstream(ctx, err, "update compliance scheme",
			"organisation_id", producerID, "compliance_scheme_id", csID)
	}
	s.invalidate(ctx, "update", current.ComplianceSchemeOperatorID, current.ComplianceSchemeID)
	s.invalidate(ctx, "update", s.joinedOperator(ctx, producerID, csID), csID)
	return selected, nil
}

// StopComplianceScheme ends a producer's membership of its current scheme.
func (s *Service) StopComplianceScheme(ctx context.Context, producerID id.OrganisationID, current accounts.ProducerComplianceScheme) error {
	if err := s.accounts.StopComplianceScheme(ctx, producerID, current.SelectedSchemeID); err != nil {
		return s.downstream(ctx, err, "stop compliance scheme",
			"organisation_id", producerID, "selected_scheme_id", current.SelectedSchemeID)
	}
	s.invalidate(ctx, "stop", current.ComplianceSchemeOperatorID, current.ComplianceSchemeID)
	return nil
}

func (s *Service) GetProducerComplianceScheme(ctx context.Context, producerID id.OrganisationID) (*accounts.ProducerComplianceScheme, error) {
	cs, err := s.accounts.GetProducerComplianceScheme(ctx, producerID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get producer compliance scheme", "organisation_id", producerID)
	}
	return cs, nil
}

func (s *Service) GetOperatorComplianceSchemes(ctx context.Context, operatorID id.OrganisationID) ([]accounts.ComplianceScheme, error) {
	schemes, err := s.accounts.GetOperatorComplianceSchemes(ctx, operatorID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get operator compliance schemes", "organisation_id", operatorID)
	}
	return schemes, nil
}

func (s *Service) GetAllComplianceSchemes(ctx context.Context) ([]accounts.ComplianceScheme, error) {
	schemes, err := s.accounts.GetAllComplianceSchemes(ctx)
	if err != nil {
		return nil, s.downstream(ctx, err, "get all compliance schemes")
	}
	return schemes, nil
}

func (s *Service) GetSchemeMembers(ctx context.Context, orgID id.OrganisationID, csID id.ComplianceSchemeID, q accounts.SchemeMembersQuery) (*accounts.SchemeMembers, error) {
	members, err := s.accounts.GetSchemeMembers(ctx, orgID, csID, q)
	if err != nil {
		return nil, s.downstream(ctx, err, "get scheme members",
			"organisation_id", orgID, "compliance_scheme_id", csID)
	}
	return members, nil
}

func (s *Service) GetSchemeMemberDetails(ctx context.Context, orgID id.OrganisationID, selectedSchemeID id.SelectedSchemeID) (*accounts.SchemeMemberDetails, error) {
	details, err := s.accounts.GetSchemeMemberDetails(ctx, orgID, selectedSchemeID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get scheme member details",
			"organisation_id", orgID, "selected_scheme_id", selectedSchemeID)
	}
	return details, nil
}

func (s *Service) GetReasonsForRemoval(ctx context.Context) ([]accounts.ReasonForRemoval, error) {
	reasons, err := s.accounts.GetReasonsForRemoval(ctx)
	if err != nil {
		return nil, s.downstream(ctx, err, "get reasons for removal")
	}
	return reasons, nil
}

func (s *Service) GetNotifications(ctx context.Context, orgID id.OrganisationID) ([]accounts.Notification, error) {
	n, err := s.accounts.GetNotifications(ctx, orgID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get notifications", "organisation_id", orgID)
	}
	return n, nil
}

func (s *Service) GetNominationRequest(ctx context.Context, enrolmentID id.EnrolmentID) (*accounts.NominationRequest, error) {
	req, err := s.accounts.GetNominationRequest(ctx, enrolmentID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get nomination request", "enrolment_id", enrolmentID)
	}
	return req, nil
}

func (s *Service) AcceptNomination(ctx context.Context, orgID id.OrganisationID, enrolmentID id.EnrolmentID, req accounts.AcceptNominationRequest) error {
	if err := s.accounts.AcceptNomination(ctx, orgID, enrolmentID, req); err != nil {
		return s.downstream(ctx, err, "accept nomination",
			"organisation_id", orgID, "enrolment_id", enrolmentID)
	}
	return nil
}

// downstream logs an accounts failure with its context and wraps it for the caller.
func (s *Service) downstream(ctx context.Context, err error, op string, attrs ...any) error {
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err,
	}, attrs...)
	s.logger.ErrorContext(ctx, "accounts call failed", args...)
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("%s failed", op))
}
