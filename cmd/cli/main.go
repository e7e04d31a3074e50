package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobtracker/internal/cli"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, rest, err := config.LoadConfig(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if len(rest) == 0 {
		fmt.Fprintln(stderr, cli.ErrUsage)
		return 2
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer app.Close()

	c := cli.NewApp(app.Users(), app.Applications(), app, stdin, stdout)
	if err := c.Run(ctx, rest); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, common.ErrorInvalidInput) {
			return 2
		}
		return 1
	}
	return 0
}
