package docsctl

import (
	"context"
	"fmt"
	"io"
)

// Main parses args, runs the selected command and releases everything it opened.
// Tests call it directly instead of building the binary.
func Main(ctx context.Context, args []string, stdout io.Writer) error {
	cmd, cfg, err := Parse(args)
	if err != nil {
		return err
	}

	app, err := New(cfg, stdout)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	return app.Execute(ctx, cmd)
}
