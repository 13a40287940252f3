package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/matzehuels/cratescope/internal/cli"
	"github.com/matzehuels/cratescope/pkg/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		if code := errors.GetCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "error [%s]: %s\n", code, errors.UserMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
