package main

import (
	"fmt"
	"os"

	"fjacquet/giften-csv/cmd/analyze"
	"fjacquet/giften-csv/cmd/parse"
	"fjacquet/giften-csv/cmd/root"
	"fjacquet/giften-csv/internal/config"
)

func init() {
	// 1. Load environment variables before any configuration is read
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
