package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/edora/internal/admin/cli"
)

func main() {

	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
