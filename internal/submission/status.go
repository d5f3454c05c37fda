package submission

import (
	"strings"
	"time"
)

// Status is the position of one reporting period in the submission lifecycle.
type Status string

const (
	StatusCannotStartYet                  Status = "CannotStartYet"
	StatusNotStarted                      Status = "NotStarted"
	StatusFileUploaded                    Status = "FileUploaded"
	StatusSubmittedToRegulator            Status = "SubmittedToRegulator"
	StatusSubmittedAndHasRecentFileUpload Status = "SubmittedAndHasRecentFileUpload"
	StatusAcceptedByRegulator             Status = "AcceptedByRegulator"
	StatusRejectedByRegulator             Status = "RejectedByRegulator"
)

// Snapshot is the part of a submission that determines its status. A zero Snapshot
// stands for "no submission".
type Snapshot struct {
	Exists            bool
	LastValidUploadAt *time.Time
	LastSubmittedAt   *time.Time
}

// Regulator decision values.
const (
	DecisionAccepted = "Accepted"
	DecisionApproved = "Approved"
	DecisionRejected = "Rejected"
)

// GetSubmissionStatus classifies a period. It is pure: the same inputs always yield the
// same status. A newer valid upload on a submitted period takes precedence over the
// regulator decision because it signals a pending resubmission.
func GetSubmissionStatus(now time.Time, period Period, s Snapshot, decision *RegulatorDecision, resubmissionEnabled bool) Status {
	if period.ActiveFrom.After(now) {
		return StatusCannotStartYet
	}
	if !s.Exists {
		return StatusNotStarted
	}
	if s.LastSubmittedAt != nil {
		if s.LastValidUploadAt != nil && s.LastValidUploadAt.After(*s.LastSubmittedAt) {
			return StatusSubmittedAndHasRecentFileUpload
		}
		if resubmissionEnabled && decision != nil {
			switch {
			case strings.EqualFold(decision.Decision, DecisionAccepted),
				strings.EqualFold(decision.Decision, DecisionApproved):
				return StatusAcceptedByRegulator
			case strings.EqualFold(decision.Decision, DecisionRejected):
				return StatusRejectedByRegulator
			}
		}
		return StatusSubmittedToRegulator
	}
	if s.LastValidUploadAt != nil {
		return StatusFileUploaded
	}
	return StatusNotStarted
}

// CanStart reports whether the user may begin or continue uploading for the period.
func (s Status) CanStart() bool {
	return s != StatusCannotStartYet
}

// HasFileToSubmit reports whether a validated file is waiting to be submitted.
func (s Status) HasFileToSubmit() bool {
	return s == StatusFileUploaded || s == StatusSubmittedAndHasRecentFileUpload
}
