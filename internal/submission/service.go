// Package submission reads and submits packaging data and registration submissions and
// classifies each reporting period for the sub-landing pages.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/requestcontext"
)

// Gateway is the Web API Gateway as seen by this package. Get methods return nil, nil
// when the gateway answers 404.
type Gateway interface {
	GetPomSubmission(ctx context.Context, submissionID id.SubmissionID) (*PomSubmission, error)
	GetRegistrationSubmission(ctx context.Context, submissionID id.SubmissionID) (*RegistrationSubmission, error)
	GetPomSubmissions(ctx context.Context, q Query) ([]PomSubmission, error)
	GetRegistrationSubmissions(ctx context.Context, q Query) ([]RegistrationSubmission, error)
	GetDecision(ctx context.Context, submissionID id.SubmissionID, t Type) (*RegulatorDecision, error)
	Submit(ctx context.Context, submissionID id.SubmissionID, fileID id.FileID, submittedBy string) error
	GetProducerValidationErrors(ctx context.Context, submissionID id.SubmissionID) ([]ProducerValidationError, error)
}

// PeriodStatus is the classified state of one reporting period.
type PeriodStatus struct {
	Period       Period             `json:"period"`
	Status       Status             `json:"status"`
	SubmissionID *id.SubmissionID   `json:"submissionId,omitempty"`
	Decision     *RegulatorDecision `json:"decision,omitempty"`
}

// Service wraps the gateway with the submission rules of the front end.
type Service struct {
	gateway             Gateway
	periods             Periods
	logger              *slog.Logger
	resubmissionEnabled bool
}

// Option configures a Service.
type Option func(*Service)

// WithResubmission folds the regulator decision into period statuses.
func WithResubmission(enabled bool) Option {
	return func(s *Service) {
		s.resubmissionEnabled = enabled
	}
}

// NewService builds a Service.
func NewService(gateway Gateway, periods Periods, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{gateway: gateway, periods: periods, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Periods returns the configured reporting windows.
func (s *Service) Periods() Periods {
	return s.periods
}

func (s *Service) GetPomSubmission(ctx context.Context, submissionID id.SubmissionID) (*PomSubmission, error) {
	sub, err := s.gateway.GetPomSubmission(ctx, submissionID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get pom submission", "submission_id", submissionID)
	}
	return sub, nil
}

func (s *Service) GetRegistrationSubmission(ctx context.Context, submissionID id.SubmissionID) (*RegistrationSubmission, error) {
	sub, err := s.gateway.GetRegistrationSubmission(ctx, submissionID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get registration submission", "submission_id", submissionID)
	}
	return sub, nil
}

// GetPomSubmissions returns the packaging submissions of the given periods.
func (s *Service) GetPomSubmissions(ctx context.Context, periods []string, cs *id.ComplianceSchemeID) ([]PomSubmission, error) {
	subs, err := s.gateway.GetPomSubmissions(ctx, Query{Type: TypeProducer, Periods: periods, ComplianceSchemeID: cs})
	if err != nil {
		return nil, s.downstream(ctx, err, "get pom submissions")
	}
	return subs, nil
}

// GetRegistrationSubmissions returns the registration submissions of the given periods.
func (s *Service) GetRegistrationSubmissions(ctx context.Context, periods []string, cs *id.ComplianceSchemeID) ([]RegistrationSubmission, error) {
	subs, err := s.gateway.GetRegistrationSubmissions(ctx, Query{Type: TypeRegistration, Periods: periods, ComplianceSchemeID: cs})
	if err != nil {
		return nil, s.downstream(ctx, err, "get registration submissions")
	}
	return subs, nil
}

func (s *Service) GetDecision(ctx context.Context, submissionID id.SubmissionID, t Type) (*RegulatorDecision, error) {
	d, err := s.gateway.GetDecision(ctx, submissionID, t)
	if err != nil {
		return nil, s.downstream(ctx, err, "get regulator decision", "submission_id", submissionID)
	}
	return d, nil
}

// Submit sends the validated file of a submission to the regulator.
func (s *Service) Submit(ctx context.Context, submissionID id.SubmissionID, fileID id.FileID, submittedBy string) error {
	if fileID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "no validated file to submit")
	}
	if err := s.gateway.Submit(ctx, submissionID, fileID, submittedBy); err != nil {
		return s.downstream(ctx, err, "submit", "submission_id", submissionID, "file_id", fileID)
	}
	return nil
}

func (s *Service) GetProducerValidationErrors(ctx context.Context, submissionID id.SubmissionID) ([]ProducerValidationError, error) {
	errs, err := s.gateway.GetProducerValidationErrors(ctx, submissionID)
	if err != nil {
		return nil, s.downstream(ctx, err, "get producer validation errors", "submission_id", submissionID)
	}
	return errs, nil
}

// PeriodStatuses classifies every configured period of t for the organisation, or for
// the compliance scheme cs when the user acts for one.
func (s *Service) PeriodStatuses(ctx context.Context, t Type, cs *id.ComplianceSchemeID) ([]PeriodStatus, error) {
	periods := s.periods.For(t)
	snapshots, err := s.latestSnapshots(ctx, t, Labels(periods), cs)
	if err != nil {
		return nil, err
	}

	decisions := make([]*RegulatorDecision, len(periods))
	if s.resubmissionEnabled {
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range periods {
			snap, ok := snapshots[p.DataPeriod]
			if !ok || snap.snapshot.LastSubmittedAt == nil {
				continue
			}
			g.Go(func() error {
				d, err := s.gateway.GetDecision(gctx, snap.id, t)
				if err != nil {
					return s.downstream(gctx, err, "get regulator decision", "submission_id", snap.id)
				}
				decisions[i] = d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	out := make([]PeriodStatus, 0, len(periods))
	for i, p := range periods {
		ps := PeriodStatus{Period: p, Decision: decisions[i]}
		snap, ok := snapshots[p.DataPeriod]
		if ok {
			subID := snap.id
			ps.SubmissionID = &subID
		}
		ps.Status = GetSubmissionStatus(now, p, snap.snapshot, decisions[i], s.resubmissionEnabled)
		out = append(out, ps)
	}
	return out, nil
}

type periodSnapshot struct {
	id       id.SubmissionID
	created  time.Time
	snapshot Snapshot
}

func keepLatest(out map[string]periodSnapshot, period string, ps periodSnapshot) {
	if cur, ok := out[period]; ok && !ps.created.After(cur.created) {
		return
	}
	out[period] = ps
}

// latestSnapshots maps each period label to its most recently created submission.
func (s *Service) latestSnapshots(ctx context.Context, t Type, labels []string, cs *id.ComplianceSchemeID) (map[string]periodSnapshot, error) {
	out := make(map[string]periodSnapshot, len(labels))
	if t == TypeRegistration {
		subs, err := s.GetRegistrationSubmissions(ctx, labels, cs)
		if err != nil {
			return nil, err
		}
		for i := range subs {
			keepLatest(out, subs[i].SubmissionPeriod, periodSnapshot{
				id: subs[i].ID, created: subs[i].Created, snapshot: subs[i].Snapshot(),
			})
		}
		return out, nil
	}

	subs, err := s.GetPomSubmissions(ctx, labels, cs)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		keepLatest(out, subs[i].SubmissionPeriod, periodSnapshot{
			id: subs[i].ID, created: subs[i].Created, snapshot: subs[i].Snapshot(),
		})
	}
	return out, nil
}

// downstream logs a gateway failure with its context and wraps it for the caller.
func (s *Service) downstream(ctx context.Context, err error, op string, attrs ...any) error {
	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err,
	}, attrs...)
	s.logger.ErrorContext(ctx, "gateway call failed", args...)
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("%s failed", op))
}
