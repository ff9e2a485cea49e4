package command

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yndnr/slackctl/internal/core/domain"
)

const defaultListLimit = 100

var channelFields = []string{"id", "name", "is_private", "is_archived", "num_members"}

func channelsCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "channels.list",
			Path:    []string{"channels", "list"},
			Summary: "List conversations",
			Usage:   "channels list [--limit <n>] [--types <types>]",
		}, channelsList),
		apiCommand(d, domain.CommandStrategy{
			ID:      "channels.info",
			Path:    []string{"channels", "info"},
			Summary: "Show one conversation",
			Usage:   "channels info <channel>",
		}, channelsInfo),
	}
}

func channelsList(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	limit, err := c.intOpt("limit", defaultListLimit)
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "conversations.list", url.Values{
		"limit":            {strconv.Itoa(limit)},
		"types":            {c.strOpt("types", "public_channel")},
		"exclude_archived": {"true"},
	})
	if err != nil {
		return domain.CliResult{}, err
	}
	return listResult(project(resp["channels"], channelFields...), "channels"), nil
}

func channelsInfo(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	channel, err := c.arg(0, "channel")
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "conversations.info", url.Values{"channel": {channel}})
	if err != nil {
		return domain.CliResult{}, err
	}
	info := object(resp, "channel")
	data := pick(info, channelFields...)
	data["topic"] = str(object(info, "topic"), "value")
	return domain.Success("", domain.WithData(data)), nil
}
