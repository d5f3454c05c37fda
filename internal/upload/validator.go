// Package upload validates multipart CSV uploads and forwards accepted files to the
// gateway.
//
// Validation stops at the first failure and records exactly one message against the
// upload field; a rejected upload yields an empty File.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"schemereg/pkg/platform/modelstate"
)

const bytesPerMB = 1024 * 1024

// Validation messages shown next to the upload field.
const (
	MsgSelectCSV     = "Select a CSV file"
	MsgInvalidUpload = "The selected file upload is invalid"
	MsgMustBeCSV     = "The selected file must be a CSV"
	MsgEmpty         = "The selected file is empty"
	msgTooLargeFmt   = "The selected file must be smaller than %dMB"
)

// Rejection reasons, used as metric labels.
const (
	ReasonNotMultipart = "not_multipart"
	ReasonInvalidPart  = "invalid_part"
	ReasonNoFile       = "no_file"
	ReasonNotCSV       = "not_csv"
	ReasonEmpty        = "empty"
	ReasonTooLarge     = "too_large"
)

// File is an accepted upload. The zero File means the upload was rejected.
type File struct {
	Name    string
	Content []byte
}

// IsEmpty reports whether f carries no content.
func (f File) IsEmpty() bool {
	return len(f.Content) == 0
}

// Validator checks a raw multipart body against the upload rules.
type Validator struct {
	limit   int64
	metrics *Metrics
}

// NewValidator builds a Validator accepting files strictly smaller than limit bytes.
func NewValidator(limit int64, metrics *Metrics) *Validator {
	return &Validator{limit: limit, metrics: metrics}
}

// Limit returns the exclusive byte limit.
func (v *Validator) Limit() int64 {
	return v.limit
}

// TooLargeMessage is the message for a file at or above the limit.
func (v *Validator) TooLargeMessage() string {
	return fmt.Sprintf(msgTooLargeFmt, v.limit/bytesPerMB)
}

// ProcessFile reads the first part of a multipart body. On any failure it adds one error
// under field to ms and returns an empty File.
func (v *Validator) ProcessFile(_ context.Context, contentType string, body io.Reader, field string, ms modelstate.ModelState) File {
	reject := func(reason, msg string) File {
		ms.AddError(field, msg)
		v.metrics.IncRejected(reason)
		return File{}
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return reject(ReasonNotMultipart, MsgSelectCSV)
	}

	part, err := multipart.NewReader(body, params["boundary"]).NextPart()
	if err != nil {
		return reject(ReasonInvalidPart, MsgInvalidUpload)
	}
	defer part.Close()

	disposition, dparams, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return reject(ReasonInvalidPart, MsgInvalidUpload)
	}
	filename := filepath.Base(dparams["filename"])
	if disposition != "form-data" || dparams["filename"] == "" {
		return reject(ReasonNoFile, MsgSelectCSV)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return reject(ReasonNotCSV, MsgMustBeCSV)
	}

	content, err := io.ReadAll(io.LimitReader(part, v.limit))
	if err != nil {
		return reject(ReasonInvalidPart, MsgInvalidUpload)
	}
	if len(content) == 0 {
		return reject(ReasonEmpty, MsgEmpty)
	}
	if int64(len(content)) >= v.limit {
		return reject(ReasonTooLarge, v.TooLargeMessage())
	}

	v.metrics.ObserveAccepted(len(content))
	return File{Name: filename, Content: content}
}
