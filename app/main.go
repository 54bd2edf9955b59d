package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xavierroma/rakis/app/config"
	"github.com/xavierroma/rakis/app/router"
	"github.com/xavierroma/rakis/app/server"
	"github.com/xavierroma/rakis/app/telemetry"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}

	logger, shutdown, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, shutdown(context.Background()))
	}()

	srv, err := server.NewServer(cfg, router.Default(), logger)
	if err != nil {
		return err
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe(ctx)
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
		stop()
		logger.Info("shutting down")
	}

	return <-serverErrCh
}
