package e2e

import (
	"github.com/cucumber/godog"

	"schemereg/e2e/steps/journey"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic request and response steps
	registerCommonSteps(ctx, tc)

	// Journey guard and policy steps
	journey.RegisterSteps(ctx, tc)
}
