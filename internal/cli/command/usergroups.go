package command

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

func usergroupsCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "usergroups.list",
			Path:    []string{"usergroups", "list"},
			Summary: "List user groups",
			Usage:   "usergroups list",
		}, usergroupsList),
		apiCommand(d, domain.CommandStrategy{
			ID:      "usergroups.users.list",
			Path:    []string{"usergroups", "users", "list"},
			Summary: "List the members of a user group",
			Usage:   "usergroups users list <usergroup>",
		}, usergroupsUsersList),
		apiCommand(d, domain.CommandStrategy{
			ID:      "usergroups.users.update",
			Path:    []string{"usergroups", "users", "update"},
			Summary: "Replace the members of a user group",
			Usage:   "usergroups users update <usergroup> <user[,user...]> [user...]",
		}, usergroupsUsersUpdate),
	}
}

func usergroupsList(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	resp, err := c.call(ctx, "usergroups.list", url.Values{"include_count": {"true"}})
	if err != nil {
		return domain.CliResult{}, err
	}
	return listResult(project(resp["usergroups"], "id", "handle", "name", "user_count"), "user groups"), nil
}

func usergroupsUsersList(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	group, err := c.arg(0, "usergroup")
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "usergroups.users.list", url.Values{"usergroup": {group}})
	if err != nil {
		return domain.CliResult{}, err
	}

	users := stringList(resp["users"])
	if len(users) == 0 {
		return domain.Success("", domain.WithMessage("no users in "+group), domain.WithData(users)), nil
	}
	return domain.Success("", domain.WithData(users), domain.WithTextLines(users...)), nil
}

func usergroupsUsersUpdate(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	group, err := c.arg(0, "usergroup")
	if err != nil {
		return domain.CliResult{}, err
	}
	if _, err := c.arg(1, "users"); err != nil {
		return domain.CliResult{}, err
	}

	var users []string
	for _, p := range c.req.Positionals[1:] {
		for _, u := range strings.Split(p, ",") {
			if u = strings.TrimSpace(u); u != "" {
				users = append(users, u)
			}
		}
	}
	if len(users) == 0 {
		return domain.CliResult{}, c.missing("users")
	}

	if _, err := c.call(ctx, "usergroups.users.update", url.Values{
		"usergroup": {group},
		"users":     {strings.Join(users, ",")},
	}); err != nil {
		return domain.CliResult{}, err
	}
	return domain.Success("",
		domain.WithMessage(fmt.Sprintf("%s now has %d members", group, len(users))),
		domain.WithData(map[string]any{"usergroup": group, "users": users}),
	), nil
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
