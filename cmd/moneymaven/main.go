package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"moneymaven/internal/cli"
)

func main() {
	err := cli.Execute(context.Background(), cli.Options{}, os.Args[1:])
	if err == nil {
		return
	}
	if !errors.Is(err, cli.ErrActionFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}
