package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/codegangsta/cli"
)

func Main(args []string, journal io.Writer) {
	App := cli.NewApp()

	App.Name = "ceph-qa"
	App.Usage = "Drive ceph qa workunits across a fleet of remote machines."
	App.Version = "0.0.1"

	App.Writer = journal

	App.Commands = []cli.Command{
		WorkunitCommandPattern(journal),
		LFNCommandPattern(journal),
	}

	// A failure to hit a command should be an error, not a zero-exit
	// help message -- scripts doing `ceph-qa somethingimportant` must
	// stop when that's not there.
	App.CommandNotFound = func(ctx *cli.Context, command string) {
		fmt.Fprintf(ctx.App.Writer, "'%s %v' is not a %s subcommand\n", ctx.App.Name, command, ctx.App.Name)
		os.Exit(int(EXIT_BADARGS))
	}

	App.Run(args)
}
