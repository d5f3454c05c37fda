package submission

import (
	"time"

	id "schemereg/pkg/domain"
)

// Type is the document family of a submission.
type Type string

const (
	TypeProducer     Type = "Producer"
	TypeRegistration Type = "Registration"
)

// SubType distinguishes the files of a registration submission.
type SubType string

const (
	SubTypeNone           SubType = ""
	SubTypeCompanyDetails SubType = "CompanyDetails"
	SubTypeBrands         SubType = "Brands"
	SubTypePartnerships   SubType = "Partnerships"
)

// UploadedFile describes the latest upload that passed validation.
type UploadedFile struct {
	FileName           string    `json:"fileName"`
	FileID             id.FileID `json:"fileId"`
	FileUploadDateTime time.Time `json:"fileUploadDateTime"`
	UploadedBy         id.UserID `json:"uploadedBy"`
}

// SubmittedFile describes the file last sent to the regulator.
type SubmittedFile struct {
	FileName          string    `json:"fileName"`
	FileID            id.FileID `json:"fileId"`
	SubmittedDateTime time.Time `json:"submittedDateTime"`
	SubmittedBy       id.UserID `json:"submittedBy"`
}

// PomSubmission is a packaging data submission for one reporting period.
type PomSubmission struct {
	ID                    id.SubmissionID `json:"id"`
	SubmissionPeriod      string          `json:"submissionPeriod"`
	PomFileName           string          `json:"pomFileName"`
	PomFileUploadDateTime *time.Time      `json:"pomFileUploadDateTime,omitempty"`
	PomDataComplete       bool            `json:"pomDataComplete"`
	ValidationPass        bool            `json:"validationPass"`
	HasWarnings           bool            `json:"hasWarnings"`
	Errors                []string        `json:"errors"`
	IsSubmitted           bool            `json:"isSubmitted"`
	HasValidFile          bool            `json:"hasValidFile"`
	Created               time.Time       `json:"created"`
	LastUploadedValidFile *UploadedFile   `json:"lastUploadedValidFile,omitempty"`
	LastSubmittedFile     *SubmittedFile  `json:"lastSubmittedFile,omitempty"`
}

// Processing reports whether the uploaded file is still being validated.
func (p *PomSubmission) Processing() bool {
	return !p.PomDataComplete && len(p.Errors) == 0
}

// Snapshot returns the facts the status classifier needs.
func (p *PomSubmission) Snapshot() Snapshot {
	if p == nil {
		return Snapshot{}
	}
	s := Snapshot{Exists: true}
	if p.LastUploadedValidFile != nil {
		t := p.LastUploadedValidFile.FileUploadDateTime
		s.LastValidUploadAt = &t
	}
	if p.LastSubmittedFile != nil {
		t := p.LastSubmittedFile.SubmittedDateTime
		s.LastSubmittedAt = &t
	}
	return s
}

// RegistrationFiles groups the file names and upload times of one registration set.
type RegistrationFiles struct {
	CompanyDetailsFileName   string     `json:"companyDetailsFileName"`
	CompanyDetailsFileID     id.FileID  `json:"companyDetailsFileId"`
	CompanyDetailsUploadedAt *time.Time `json:"companyDetailsUploadDatetime,omitempty"`
	BrandsFileName           string     `json:"brandsFileName,omitempty"`
	BrandsUploadedAt         *time.Time `json:"brandsUploadDatetime,omitempty"`
	PartnershipsFileName     string     `json:"partnershipsFileName,omitempty"`
	PartnershipsUploadedAt   *time.Time `json:"partnershipsUploadDatetime,omitempty"`
	SubmittedDateTime        *time.Time `json:"submittedDateTime,omitempty"`
	SubmittedBy              *id.UserID `json:"submittedBy,omitempty"`
}

// RegistrationSubmission is an organisation details submission for one reporting period.
type RegistrationSubmission struct {
	ID                         id.SubmissionID    `json:"id"`
	SubmissionPeriod           string             `json:"submissionPeriod"`
	CompanyDetailsFileName     string             `json:"companyDetailsFileName"`
	CompanyDetailsDataComplete bool               `json:"companyDetailsDataComplete"`
	RequiresBrandsFile         bool               `json:"requiresBrandsFile"`
	BrandsFileName             string             `json:"brandsFileName"`
	BrandsDataComplete         bool               `json:"brandsDataComplete"`
	RequiresPartnershipsFile   bool               `json:"requiresPartnershipsFile"`
	PartnershipsFileName       string             `json:"partnershipsFileName"`
	PartnershipsDataComplete   bool               `json:"partnershipsDataComplete"`
	ValidationPass             bool               `json:"validationPass"`
	HasValidFile               bool               `json:"hasValidFile"`
	Errors                     []string           `json:"errors"`
	IsSubmitted                bool               `json:"isSubmitted"`
	Created                    time.Time          `json:"created"`
	LastUploadedValidFiles     *RegistrationFiles `json:"lastUploadedValidFiles,omitempty"`
	LastSubmittedFiles         *RegistrationFiles `json:"lastSubmittedFiles,omitempty"`
}

// Processing reports whether any required file is still being validated.
func (r *RegistrationSubmission) Processing() bool {
	if len(r.Errors) > 0 {
		return false
	}
	if !r.CompanyDetailsDataComplete {
		return true
	}
	if r.RequiresBrandsFile && r.BrandsFileName != "" && !r.BrandsDataComplete {
		return true
	}
	return r.RequiresPartnershipsFile && r.PartnershipsFileName != "" && !r.PartnershipsDataComplete
}

// NextUploadSubType returns the next file the user still has to upload, or SubTypeNone
// when the set is complete.
func (r *RegistrationSubmission) NextUploadSubType() SubType {
	switch {
	case r.CompanyDetailsFileName == "":
		return SubTypeCompanyDetails
	case r.RequiresBrandsFile && r.BrandsFileName == "":
		return SubTypeBrands
	case r.RequiresPartnershipsFile && r.PartnershipsFileName == "":
		return SubTypePartnerships
	default:
		return SubTypeNone
	}
}

// Snapshot returns the facts the status classifier needs.
func (r *RegistrationSubmission) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	s := Snapshot{Exists: true}
	if f := r.LastUploadedValidFiles; f != nil {
		s.LastValidUploadAt = latest(f.CompanyDetailsUploadedAt, f.BrandsUploadedAt, f.PartnershipsUploadedAt)
	}
	if f := r.LastSubmittedFiles; f != nil && f.SubmittedDateTime != nil {
		t := *f.SubmittedDateTime
		s.LastSubmittedAt = &t
	}
	return s
}

func latest(ts ...*time.Time) *time.Time {
	var out *time.Time
	for _, t := range ts {
		if t != nil && (out == nil || t.After(*out)) {
			v := *t
			out = &v
		}
	}
	return out
}

// RegulatorDecision is the regulator's verdict on a submitted file.
type RegulatorDecision struct {
	SubmissionID           id.SubmissionID `json:"submissionId"`
	Decision               string          `json:"decision"`
	Comments               string          `json:"comments"`
	IsResubmissionRequired bool            `json:"isResubmissionRequired"`
	Created                time.Time       `json:"created"`
}

// ProducerValidationError is one row-level problem found in an uploaded packaging file.
type ProducerValidationError struct {
	RowNumber         int      `json:"rowNumber"`
	ProducerID        string   `json:"producerId"`
	SubsidiaryID      string   `json:"subsidiaryId"`
	ProducerType      string   `json:"producerType"`
	DataSubmission    string   `json:"dataSubmissionPeriod"`
	ProducerSize      string   `json:"producerSize"`
	WasteType         string   `json:"wasteType"`
	PackagingCategory string   `json:"packagingCategory"`
	MaterialType      string   `json:"materialType"`
	MaterialSubType   string   `json:"materialSubType"`
	FromHomeNation    string   `json:"fromHomeNation"`
	ToHomeNation      string   `json:"toHomeNation"`
	QuantityKg        string   `json:"quantityKg"`
	QuantityUnits     string   `json:"quantityUnits"`
	Issue             string   `json:"issue"`
	ErrorMessages     []string `json:"errorMessages"`
}

// Query selects submissions of one family.
type Query struct {
	Type               Type
	Periods            []string
	ComplianceSchemeID *id.ComplianceSchemeID
	Limit              int
}
