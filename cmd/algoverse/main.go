package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "algoverse:", err)
		os.Exit(1)
	}
}
