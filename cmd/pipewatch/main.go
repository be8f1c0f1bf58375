// Command pipewatch is the pipeline dashboard CLI and API gateway.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/pipewatch/internal/cli"
	"github.com/rshade/pipewatch/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCmd(version.Full())
	return root.ExecuteContext(context.Background())
}
