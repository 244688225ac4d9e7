package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/C0d3N1nJ4/payment-builder/cmd/batch"
	"github.com/C0d3N1nJ4/payment-builder/cmd/convert"
	"github.com/C0d3N1nJ4/payment-builder/cmd/inspect"
	"github.com/C0d3N1nJ4/payment-builder/cmd/normalize"
	"github.com/C0d3N1nJ4/payment-builder/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
