package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yndnr/slackctl/internal/cli/command"
	"github.com/yndnr/slackctl/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if err := command.App().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
