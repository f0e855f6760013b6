package main

import (
	"context"
	"fmt"
	"os"

	"github.com/askanything/board/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "askboard:", err)
		os.Exit(1)
	}
}
