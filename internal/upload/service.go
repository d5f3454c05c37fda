package upload

import (
	"context"
	"io"
	"log/slog"

	"schemereg/internal/submission"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/requestcontext"
)

// Metadata travels with an accepted file to the gateway.
type Metadata struct {
	SubmissionType       submission.Type
	SubmissionSubType    submission.SubType
	SubmissionPeriod     string
	ComplianceSchemeID   *id.ComplianceSchemeID
	RegistrationSetID    *id.RegistrationSetID
	OriginalSubmissionID *id.SubmissionID
	SubmissionID         *id.SubmissionID
}

// Request is one upload as received from the browser.
type Request struct {
	ContentType string
	Body        io.Reader
	// Field is the form field errors are keyed on.
	Field    string
	Metadata Metadata
}

// Uploader sends an accepted file to the gateway and returns the submission it landed in.
type Uploader interface {
	UploadFile(ctx context.Context, f File, md Metadata) (id.SubmissionID, error)
}

// Service validates uploads and streams accepted files to the gateway.
type Service struct {
	validator *Validator
	uploader  Uploader
	logger    *slog.Logger
	metrics   *Metrics
}

// NewService builds a Service.
func NewService(validator *Validator, uploader Uploader, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{validator: validator, uploader: uploader, logger: logger, metrics: metrics}
}

// StreamFile validates req and forwards an accepted file. When validation fails the
// errors are in ms and the returned id is zero with a nil error. Gateway failures are
// returned; nothing is retried.
func (s *Service) StreamFile(ctx context.Context, req Request, ms modelstate.ModelState) (id.SubmissionID, error) {
	file := s.validator.ProcessFile(ctx, req.ContentType, req.Body, req.Field, ms)
	if !ms.IsValid() || file.IsEmpty() {
		s.logger.WarnContext(ctx, "upload rejected",
			"request_id", requestcontext.RequestID(ctx),
			"submission_type", req.Metadata.SubmissionType,
			"errors", ms.Errors(req.Field),
		)
		return id.SubmissionID{}, nil
	}

	submissionID, err := s.uploader.UploadFile(ctx, file, req.Metadata)
	if err != nil {
		s.metrics.IncForwarded(string(req.Metadata.SubmissionType), "error")
		s.logger.ErrorContext(ctx, "upload to gateway failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", "upload file",
			"file_name", file.Name,
			"submission_type", req.Metadata.SubmissionType,
			"submission_period", req.Metadata.SubmissionPeriod,
			"error", err,
		)
		return id.SubmissionID{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "upload file failed")
	}
	s.metrics.IncForwarded(string(req.Metadata.SubmissionType), "ok")
	s.logger.InfoContext(ctx, "upload forwarded",
		"request_id", requestcontext.RequestID(ctx),
		"submission_id", submissionID,
		"bytes", len(file.Content),
	)
	return submissionID, nil
}
