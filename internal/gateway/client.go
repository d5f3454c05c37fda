// Package gateway is the client of the Web API Gateway, which owns submissions, file
// uploads and regulator decisions.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"schemereg/internal/platform/httpclient"
	"schemereg/internal/submission"
	"schemereg/internal/upload"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
)

const apiName = "gateway"

var (
	_ submission.Gateway = (*Client)(nil)
	_ upload.Uploader    = (*Client)(nil)
)

// Client calls the Web API Gateway.
type Client struct {
	http *httpclient.Client
}

// New creates a gateway client.
func New(baseURL string, timeout time.Duration, opts ...httpclient.Option) *Client {
	return &Client{http: httpclient.New(apiName, baseURL, timeout, opts...)}
}

// UploadFile posts an accepted file as multipart form data. The gateway answers with a
// Location header whose last segment is the submission id.
func (c *Client) UploadFile(ctx context.Context, f upload.File, md upload.Metadata) (id.SubmissionID, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	partHeader.Set("Content-Type", "text/csv")
	pw, err := mw.CreatePart(partHeader)
	if err != nil {
		return id.SubmissionID{}, fmt.Errorf("gateway upload file: build body: %w", err)
	}
	if _, err := pw.Write(f.Content); err != nil {
		return id.SubmissionID{}, fmt.Errorf("gateway upload file: build body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return id.SubmissionID{}, fmt.Errorf("gateway upload file: build body: %w", err)
	}

	resp, err := c.http.Do(ctx, "upload file", http.MethodPost, "/api/v1/file-upload",
		mw.FormDataContentType(), &buf, uploadHeaders(f.Name, md))
	if err != nil {
		return id.SubmissionID{}, err
	}
	return submissionIDFromLocation(resp.Header.Get("Location"))
}

func uploadHeaders(fileName string, md upload.Metadata) http.Header {
	h := http.Header{}
	h.Set("FileName", fileName)
	h.Set("SubmissionType", string(md.SubmissionType))
	if md.SubmissionSubType != submission.SubTypeNone {
		h.Set("SubmissionSubType", string(md.SubmissionSubType))
	}
	h.Set("SubmissionPeriod", md.SubmissionPeriod)
	if md.ComplianceSchemeID != nil {
		h.Set("ComplianceSchemeId", md.ComplianceSchemeID.String())
	}
	if md.RegistrationSetID != nil {
		h.Set("RegistrationSetId", md.RegistrationSetID.String())
	}
	if md.OriginalSubmissionID != nil {
		h.Set("OriginalSubmissionId", md.OriginalSubmissionID.String())
	}
	if md.SubmissionID != nil {
		h.Set("SubmissionId", md.SubmissionID.String())
	}
	return h
}

func submissionIDFromLocation(location string) (id.SubmissionID, error) {
	if location == "" {
		return id.SubmissionID{}, dErrors.New(dErrors.CodeInternal, "gateway upload file: response has no Location header")
	}
	if u, err := url.Parse(location); err == nil {
		location = u.Path
	}
	subID, err := id.ParseSubmissionID(path.Base(strings.TrimRight(location, "/")))
	if err != nil {
		return id.SubmissionID{}, dErrors.Wrap(err, dErrors.CodeInternal, "gateway upload file: bad Location header")
	}
	return subID, nil
}

func (c *Client) GetPomSubmission(ctx context.Context, submissionID id.SubmissionID) (*submission.PomSubmission, error) {
	var sub submission.PomSubmission
	found, err := c.http.GetJSON(ctx, "get submission", "/api/v1/submissions/"+submissionID.String(), &sub)
	if err != nil || !found {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) GetRegistrationSubmission(ctx context.Context, submissionID id.SubmissionID) (*submission.RegistrationSubmission, error) {
	var sub submission.RegistrationSubmission
	found, err := c.http.GetJSON(ctx, "get submission", "/api/v1/submissions/"+submissionID.String(), &sub)
	if err != nil || !found {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) GetPomSubmissions(ctx context.Context, q submission.Query) ([]submission.PomSubmission, error) {
	var subs []submission.PomSubmission
	if _, err := c.http.GetJSON(ctx, "get submissions", "/api/v1/submissions?"+submissionsQuery(q), &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) GetRegistrationSubmissions(ctx context.Context, q submission.Query) ([]submission.RegistrationSubmission, error) {
	var subs []submission.RegistrationSubmission
	if _, err := c.http.GetJSON(ctx, "get submissions", "/api/v1/submissions?"+submissionsQuery(q), &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func submissionsQuery(q submission.Query) string {
	v := url.Values{}
	v.Set("type", string(q.Type))
	if len(q.Periods) > 0 {
		v.Set("periods", strings.Join(q.Periods, ","))
	}
	if q.ComplianceSchemeID != nil {
		v.Set("complianceSchemeId", q.ComplianceSchemeID.String())
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// GetDecision returns the latest regulator decision for a submission, or nil when none.
func (c *Client) GetDecision(ctx context.Context, submissionID id.SubmissionID, t submission.Type) (*submission.RegulatorDecision, error) {
	v := url.Values{}
	v.Set("submissionId", submissionID.String())
	v.Set("type", string(t))
	v.Set("limit", "1")
	var decisions []submission.RegulatorDecision
	found, err := c.http.GetJSON(ctx, "get decision", "/api/v1/decisions?"+v.Encode(), &decisions)
	if err != nil || !found || len(decisions) == 0 {
		return nil, err
	}
	return &decisions[0], nil
}

type submitRequest struct {
	FileID      id.FileID `json:"fileId"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
}

func (c *Client) Submit(ctx context.Context, submissionID id.SubmissionID, fileID id.FileID, submittedBy string) error {
	return c.http.SendJSON(ctx, "submit", http.MethodPost,
		"/api/v1/submissions/"+submissionID.String()+"/submit",
		submitRequest{FileID: fileID, SubmittedBy: submittedBy}, nil)
}

func (c *Client) GetProducerValidationErrors(ctx context.Context, submissionID id.SubmissionID) ([]submission.ProducerValidationError, error) {
	var errs []submission.ProducerValidationError
	_, err := c.http.GetJSON(ctx, "get producer validations",
		"/api/v1/submissions/"+submissionID.String()+"/producer-validations", &errs)
	if err != nil {
		return nil, err
	}
	return errs, nil
}
