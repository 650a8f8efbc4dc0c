package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/aidd/cmd/aidd"
	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/style"
)

func main() {
	rootCmd := aidd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, style.Hint.Render("Cancelled."))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, style.Error.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
