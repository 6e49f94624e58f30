package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/ownerswap/internal/cli"
	"github.com/arthur-debert/ownerswap/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		out := styles.NewRenderer(os.Stderr)
		fmt.Fprintln(os.Stderr, out.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}
