package command

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yndnr/slackctl/internal/core/domain"
)

const (
	defaultHistoryLimit = 20
	defaultSearchCount  = 20
)

func messagesCommands(d Deps) []domain.CommandStrategy {
	return []domain.CommandStrategy{
		apiCommand(d, domain.CommandStrategy{
			ID:      "messages.send",
			Path:    []string{"messages", "send"},
			Summary: "Post a message to a channel",
			Usage:   "messages send <channel> <text...> [--thread-ts <ts>]",
		}, messagesSend),
		apiCommand(d, domain.CommandStrategy{
			ID:      "messages.edit",
			Path:    []string{"messages", "edit"},
			Summary: "Replace the text of a message",
			Usage:   "messages edit <channel> <ts> <text...>",
		}, messagesEdit),
		apiCommand(d, domain.CommandStrategy{
			ID:      "messages.delete",
			Path:    []string{"messages", "delete"},
			Summary: "Delete a message",
			Usage:   "messages delete <channel> <ts>",
		}, messagesDelete),
		apiCommand(d, domain.CommandStrategy{
			ID:      "messages.history",
			Path:    []string{"messages", "history"},
			Summary: "Show recent messages of a channel",
			Usage:   "messages history <channel> [--limit <n>]",
		}, messagesHistory),
		apiCommand(d, domain.CommandStrategy{
			ID:                        "messages.search",
			Path:                      []string{"messages", "search"},
			Summary:                   "Search messages (user token only)",
			Usage:                     "messages search <query...> --xoxp [--count <n>]",
			AllowedTokenTypes:         []domain.TokenType{domain.TokenTypeUser},
			RequiresExplicitTokenType: true,
		}, messagesSearch),
	}
}

func messagesSend(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	channel, err := c.arg(0, "channel")
	if err != nil {
		return domain.CliResult{}, err
	}
	text, err := c.rest(1, "text")
	if err != nil {
		return domain.CliResult{}, err
	}

	params := url.Values{"channel": {channel}, "text": {text}}
	if ts := c.strOpt("thread-ts", ""); ts != "" {
		params.Set("thread_ts", ts)
	}
	resp, err := c.call(ctx, "chat.postMessage", params)
	if err != nil {
		return domain.CliResult{}, err
	}

	return domain.Success("",
		domain.WithMessage(fmt.Sprintf("sent to %s (ts %s)", str(resp, "channel"), str(resp, "ts"))),
		domain.WithData(pick(resp, "channel", "ts")),
	), nil
}

func messagesEdit(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	channel, err := c.arg(0, "channel")
	if err != nil {
		return domain.CliResult{}, err
	}
	ts, err := c.arg(1, "ts")
	if err != nil {
		return domain.CliResult{}, err
	}
	text, err := c.rest(2, "text")
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "chat.update", url.Values{"channel": {channel}, "ts": {ts}, "text": {text}})
	if err != nil {
		return domain.CliResult{}, err
	}
	return domain.Success("",
		domain.WithMessage(fmt.Sprintf("updated %s in %s", str(resp, "ts"), str(resp, "channel"))),
		domain.WithData(pick(resp, "channel", "ts", "text")),
	), nil
}

func messagesDelete(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	channel, err := c.arg(0, "channel")
	if err != nil {
		return domain.CliResult{}, err
	}
	ts, err := c.arg(1, "ts")
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "chat.delete", url.Values{"channel": {channel}, "ts": {ts}})
	if err != nil {
		return domain.CliResult{}, err
	}
	return domain.Success("",
		domain.WithMessage(fmt.Sprintf("deleted %s in %s", str(resp, "ts"), str(resp, "channel"))),
		domain.WithData(pick(resp, "channel", "ts")),
	), nil
}

func messagesHistory(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	channel, err := c.arg(0, "channel")
	if err != nil {
		return domain.CliResult{}, err
	}
	limit, err := c.intOpt("limit", defaultHistoryLimit)
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "conversations.history", url.Values{
		"channel": {channel},
		"limit":   {strconv.Itoa(limit)},
	})
	if err != nil {
		return domain.CliResult{}, err
	}
	return listResult(project(resp["messages"], "ts", "user", "text"), "messages"), nil
}

func messagesSearch(ctx context.Context, c *apiCall) (domain.CliResult, error) {
	query, err := c.rest(0, "query")
	if err != nil {
		return domain.CliResult{}, err
	}
	count, err := c.intOpt("count", defaultSearchCount)
	if err != nil {
		return domain.CliResult{}, err
	}

	resp, err := c.call(ctx, "search.messages", url.Values{
		"query": {query},
		"count": {strconv.Itoa(count)},
	})
	if err != nil {
		return domain.CliResult{}, err
	}

	matches, _ := object(resp, "messages")["matches"].([]any)
	rows := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		match, ok := m.(map[string]any)
		if !ok {
			continue
		}
		row := pick(match, "ts", "username", "text", "permalink")
		row["channel"] = str(object(match, "channel"), "name")
		rows = append(rows, row)
	}
	return listResult(rows, "matches"), nil
}

// listResult wraps rows; an empty list gets a message instead of an
// empty table.
func listResult(rows []map[string]any, noun string) domain.CliResult {
	if len(rows) == 0 {
		return domain.Success("", domain.WithMessage("no "+noun), domain.WithData(rows))
	}
	return domain.Success("", domain.WithData(rows))
}
