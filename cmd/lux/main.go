package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oarkflow/cli"
	"github.com/oarkflow/cli/console"
	"github.com/oarkflow/cli/contracts"

	"github.com/oarkflow/lux"
)

const version = "v0.1.0"

func main() {
	cfg, err := lux.LoadConfig(lux.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitConfig)
	}
	a := newApp(cfg, os.Stdout, os.Stderr)

	// `lux` alone starts the REPL and `lux script.lux` runs a file.
	switch {
	case len(os.Args) == 1:
		os.Exit(a.repl())
	case len(os.Args) == 2 && filepath.Ext(os.Args[1]) == cfg.Extension:
		os.Exit(a.runFile(os.Args[1]))
	}

	cli.SetName("Lux")
	cli.SetVersion(version)
	application := cli.New()
	client := application.Instance.Client()
	client.Register([]contracts.Command{
		console.NewListCommand(client),
		&RunCommand{app: a},
		&ReplCommand{app: a},
		&TokensCommand{app: a},
		&AstCommand{app: a},
		&FmtCommand{app: a},
		&CheckCommand{app: a},
		&BatchCommand{app: a},
	})
	client.Run(os.Args, true)
}
