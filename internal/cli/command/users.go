package command

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yndnr/slackctl/internal/core/domain"
)

var userFields = []string{"id", "name", "real_name", "is_bot", "deleted"}

func usersCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "users.list",
			Path:    []string{"users", "list"},
			Summary: "List workspace members",
			Usage:   "users list [--limit <n>]",
		}, usersList),
		apiCommand(d, domain.CommandStrategy{
			ID:      "users.info",
			Path:    []string{"users", "info"},
			Summary: "Show one member",
			Usage:   "users info <user>",
		}, usersInfo),
	}
}

func usersList(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	limit, err := c.intOpt("limit", defaultListLimit)
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "users.list", url.Values{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return domain.CliResult{}, err
	}
	return listResult(project(resp["members"], userFields...), "users"), nil
}

func usersInfo(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	user, err := c.arg(0, "user")
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "users.info", url.Values{"user": {user}})
	if err != nil {
		return domain.CliResult{}, err
	}
	info := object(resp, "user")
	data := pick(info, userFields...)
	data["tz"] = info["tz"]
	return domain.Success("", domain.WithData(data)), nil
}
