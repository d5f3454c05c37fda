// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewFormRequest creates a POST request with an urlencoded form body.
func NewFormRequest(t *testing.T, path string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// NewMultipartRequest creates a POST request carrying a single file part.
func NewMultipartRequest(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	body, contentType := MultipartBody(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

// MultipartBody encodes a single file part and returns the body and its Content-Type.
func MultipartBody(t *testing.T, field, filename string, content []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err, "failed to create form file")
	_, err = fw.Write(content)
	require.NoError(t, err, "failed to write form file")
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertRedirect asserts a 302 to the expected location.
func AssertRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, rr.Code, "expected redirect, body: %s", rr.Body.String())
	assert.Equal(t, location, rr.Header().Get("Location"), "unexpected redirect location")
}

// Page is the decoded JSON page model written by the page renderer.
type Page struct {
	View     string              `json:"view"`
	Model    json.RawMessage     `json:"model"`
	Errors   map[string][]string `json:"errors"`
	BackLink string              `json:"back_link"`
}

// DecodePage decodes a rendered page model, failing the test on error.
func DecodePage(t *testing.T, rr *httptest.ResponseRecorder) Page {
	t.Helper()
	var p Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p), "failed to decode page: %s", rr.Body.String())
	return p
}

// DecodeModel decodes the model of a rendered page into T.
func DecodeModel[T any](t *testing.T, p Page) T {
	t.Helper()
	var m T
	require.NoError(t, json.Unmarshal(p.Model, &m), "failed to decode page model")
	return m
}

// CarryCookies copies the Set-Cookie values of a response onto the next request.
func CarryCookies(from *httptest.ResponseRecorder, to *http.Request) *http.Request {
	for _, c := range from.Result().Cookies() {
		to.AddCookie(c)
	}
	return to
}
