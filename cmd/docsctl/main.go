package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/docsync/userdocs/pkg/docsctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := docsctl.Main(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "docsctl:", err)
		stop()
		os.Exit(1)
	}
}
