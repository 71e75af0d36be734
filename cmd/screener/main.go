package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jwaldner/options-screener/internal/cli"
	"github.com/jwaldner/options-screener/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(config.Load(), os.Stdout)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
