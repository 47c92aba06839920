// Package main provides the guidebook command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/logging"
)

func main() {
	logger := logging.Default()
	//nolint:forbidigo // main must exit with the command status code.
	os.Exit(run(context.Background(), logger, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, logger *logrus.Logger, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, newApp(afero.NewOsFs(), logger), args, stdout, stderr)
}

func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.logger.WithError(err).Debug("Command failed")
		_, _ = fmt.Fprintf(stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		return 1
	}

	return 0
}
