package e2e

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

func registerCommonSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^I am not signed in$`, func(context.Context) error {
		tc.token = ""
		return nil
	})
	ctx.Step(`^I am signed in as an? "([^"]*)"$`, func(_ context.Context, role string) error {
		return tc.SignInAs(role, false)
	})
	ctx.Step(`^I am signed in as a regulator$`, func(context.Context) error {
		return tc.SignInAs("Approved Person", true)
	})
	ctx.Step(`^I GET "([^"]*)"$`, func(_ context.Context, path string) error {
		return tc.GET(path)
	})
	ctx.Step(`^the response status should be (\d+)$`, func(_ context.Context, want string) error {
		code, err := strconv.Atoi(want)
		if err != nil {
			return err
		}
		if tc.Status() != code {
			return fmt.Errorf("expected status %d, got %d", code, tc.Status())
		}
		return nil
	})
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, func(_ context.Context, field, want string) error {
		got, err := tc.ResponseField(field)
		if err != nil {
			return err
		}
		if fmt.Sprint(got) != want {
			return fmt.Errorf("expected %s=%q, got %q", field, want, got)
		}
		return nil
	})
}
