package command

import (
	"context"
	"fmt"

	"github.com/yndnr/slackctl/internal/core/domain"
)

func authCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "auth.test",
			Path:    []string{"auth", "test"},
			Summary: "Check the credential and show who it belongs to",
			Usage:   "auth test [--xoxp|--xoxb]",
		}, authTest),
	}
}

func authTest(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	tc, err := c.token()
	if err != nil {
		return domain.CliResult{}, err
	}
	resp, err := c.caller.Call(ctx, "auth.test", tc.Token, nil)
	if err != nil {
		return domain.CliResult{}, err
	}

	data := pick(resp, "url", "team", "team_id", "user", "user_id", "bot_id")
	data["token_type"] = string(tc.Type)
	data["token_source"] = tc.Source

	return domain.Success("",
		domain.WithMessage(fmt.Sprintf("authenticated as %s on %s (%s)", str(resp, "user"), str(resp, "team"), tc.Source)),
		domain.WithData(data),
	), nil
}
