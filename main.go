package main

import (
	"fmt"
	"os"

	"github.com/ImCitizen13/diyaa-al-quran/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(fmt.Sprintf("%s (%s)", Version, Commit))
	if len(os.Args) < 2 {
		// No command runs the server
		cmd.SetArgs([]string{"serve"})
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
