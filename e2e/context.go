// Package e2e drives a running schemereg server through its pages with godog scenarios.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	identityCookie = ".schemereg.auth"
	tokenIssuer    = "schemereg"
)

// TestContext holds the browser state of one scenario.
type TestContext struct {
	baseURL    string
	signingKey string
	client     *http.Client
	token      string

	status   int
	location string
	body     []byte
}

// NewTestContext reads SCHEMEREG_E2E_URL and IDENTITY_SIGNING_KEY from the environment.
func NewTestContext() (*TestContext, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	key := os.Getenv("IDENTITY_SIGNING_KEY")
	if key == "" {
		key = "dev-identity-key-change-in-production"
	}
	return &TestContext{
		baseURL:    strings.TrimRight(os.Getenv("SCHEMEREG_E2E_URL"), "/"),
		signingKey: key,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			// Pages answer with 302s; scenarios assert on them instead of following.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// SignInAs issues an identity token for a user with the given service role. Regulators act
// for a regulator organisation; everybody else for a producer.
func (tc *TestContext) SignInAs(role string, regulator bool) error {
	orgType := "Producer"
	if regulator {
		orgType = "Regulators"
	}
	userID := uuid.NewString()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]any{
			"id":          userID,
			"email":       "e2e@example.com",
			"firstName":   "End",
			"lastName":    "ToEnd",
			"serviceRole": role,
			"organisations": []map[string]any{{
				"id":               uuid.NewString(),
				"name":             "E2E Organisation",
				"organisationType": orgType,
			}},
		},
		"iss": tokenIssuer,
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
		"jti": uuid.NewString(),
	})
	signed, err := token.SignedString([]byte(tc.signingKey))
	if err != nil {
		return fmt.Errorf("sign identity token: %w", err)
	}
	tc.token = signed
	return nil
}

// GET requests path and records the response.
func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

// POST submits form to path and records the response.
func (tc *TestContext) POST(path string, form url.Values) error {
	return tc.do(http.MethodPost, path, strings.NewReader(form.Encode()))
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if tc.token != "" {
		req.AddCookie(&http.Cookie{Name: identityCookie, Value: tc.token})
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.location = resp.Header.Get("Location")
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

// Status is the last response status.
func (tc *TestContext) Status() int { return tc.status }

// Location is the last redirect target.
func (tc *TestContext) Location() string { return tc.location }

// ResponseField returns a top-level field of the last JSON response.
func (tc *TestContext) ResponseField(field string) (any, error) {
	var m map[string]any
	if err := json.Unmarshal(tc.body, &m); err != nil {
		return nil, fmt.Errorf("response is not JSON: %s", tc.body)
	}
	v, ok := m[field]
	if !ok {
		return nil, fmt.Errorf("field %q missing from %s", field, tc.body)
	}
	return v, nil
}
