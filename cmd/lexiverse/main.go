// Command lexiverse summarises legal documents and answers questions
// about them using the LexiVerse analysis service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexiverse-cli/internal/bootstrap"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(bootstrap.Build)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
