package command

import (
	"context"

	"github.com/yndnr/slackctl/internal/core/domain"
)

func filesCommands() []domain.CommandStrategy {
	return []domain.CommandStrategy{{
		ID:      "files.upload",
		Path:    []string{"files", "upload"},
		Summary: "Upload a file (reserved)",
		Usage:   "files upload <channel> <path>",
		Execute: func(context.Context, domain.CommandRequest) (domain.CliResult, error) {
			return domain.CliResult{}, domain.ErrNotImplemented.
				WithDetails("files upload").
				WithHint("upload the file in the Slack client for now")
		},
	}}
}
