package journey

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, form url.Values) error
	Status() int
	Location() string
}

// RegisterSteps registers journey guard and page policy step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &journeySteps{tc: tc}

	ctx.Step(`^I POST an empty form to "([^"]*)"$`, steps.postEmpty)
	ctx.Step(`^I should be redirected to "([^"]*)"$`, steps.redirectedTo)
	ctx.Step(`^I should be forbidden$`, steps.forbidden)
}

type journeySteps struct {
	tc TestContext
}

func (s *journeySteps) postEmpty(_ context.Context, path string) error {
	return s.tc.POST(path, url.Values{})
}

func (s *journeySteps) redirectedTo(_ context.Context, want string) error {
	if s.tc.Status() != http.StatusFound {
		return fmt.Errorf("expected a redirect, got status %d", s.tc.Status())
	}
	if s.tc.Location() != want {
		return fmt.Errorf("expected redirect to %q, got %q", want, s.tc.Location())
	}
	return nil
}

func (s *journeySteps) forbidden(context.Context) error {
	if s.tc.Status() != http.StatusForbidden {
		return fmt.Errorf("expected 403, got %d", s.tc.Status())
	}
	return nil
}
