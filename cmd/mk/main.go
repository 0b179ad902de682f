// Package main is the entry point for the mk task runner.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/mk/cmd/mk/commands"
	"go.trai.ch/mk/internal/app"
	"go.trai.ch/mk/internal/core/domain"
	_ "go.trai.ch/mk/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// An interrupt terminates the currently running command and aborts the
	// rest of the sequence.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 2
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with metadata when formatted with %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return domain.ExitStatus(err)
	}
	return 0
}
