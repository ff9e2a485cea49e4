package command

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

func reactionsCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "reactions.add",
			Path:    []string{"reactions", "add"},
			Summary: "Add an emoji reaction to a message",
			Usage:   "reactions add <channel> <ts> <name>",
		}, reaction("reactions.add", "added")),
		apiCommand(d, domain.CommandStrategy{
			ID:      "reactions.remove",
			Path:    []string{"reactions", "remove"},
			Summary: "Remove an emoji reaction from a message",
			Usage:   "reactions remove <channel> <ts> <name>",
		}, reaction("reactions.remove", "removed")),
	}
}

func reaction(method, verb string) apiHandler {
	return func(ctx context.Context, c *apiCall) (domain.CliResult, error) {
		channel, err := c.arg(0, "channel")
		if err != nil {
			return domain.CliResult{}, err
		}
		ts, err := c.arg(1, "ts")
		if err != nil {
			return domain.CliResult{}, err
		}
		name, err := c.arg(2, "name")
		if err != nil {
			return domain.CliResult{}, err
		}
		name = strings.Trim(name, ":")

		if _, err := c.call(ctx, method, url.Values{
			"channel":   {channel},
			"timestamp": {ts},
			"name":      {name},
		}); err != nil {
			return domain.CliResult{}, err
		}
		return domain.Success("",
			domain.WithMessage(fmt.Sprintf("%s :%s: on %s in %s", verb, name, ts, channel)),
			domain.WithData(map[string]any{"channel": channel, "ts": ts, "name": name}),
		), nil
	}
}
