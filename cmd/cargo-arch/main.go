package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ralt/cargo-arch/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rootCmd := cli.NewRootCmd()
	rootCmd.SetArgs(cli.CargoArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		stop()
		os.Exit(1)
	}
}
