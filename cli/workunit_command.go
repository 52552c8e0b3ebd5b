package cli

import (
	"io"

	"github.com/codegangsta/cli"
	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/workunit"
)

func WorkunitCommandPattern(journal io.Writer) cli.Command {
	return cli.Command{
		Name:  "workunit",
		Usage: "Run workunits on a set of client roles",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "tasks, f",
				Usage: "Location of the task config (yaml format)",
			},
			cli.StringFlag{
				Name:  "overrides",
				Usage: "Optional overrides config, deep-merged over the task config (yaml format)",
			},
			cli.StringSliceFlag{
				Name:  "remote, r",
				Usage: "Map a role onto a remote host, as role=[user@]host (repeatable)",
			},
			cli.BoolFlag{
				Name:  "local",
				Usage: "Map every configured role onto the local host (mostly for smoke testing)",
			},
			cli.StringFlag{
				Name:  "testdir",
				Value: "/home/ubuntu/cephtest",
				Usage: "Base test directory on the remotes",
			},
			cli.StringFlag{
				Name:  "git-url",
				Value: workunit.CanonicalGitURL,
				Usage: "Upstream repository holding the qa/workunits tree",
			},
		},
		Action: func(ctx *cli.Context) {
			log := newJournalLogger(journal)

			cfg := parseWorkunitConfig(readConfigFile(ctx.String("tasks")))
			var overrides *def.WorkunitConfig
			if path := ctx.String("overrides"); path != "" {
				overrides = parseWorkunitConfig(readConfigFile(path))
			}

			roles := make([]string, 0, len(cfg.Clients))
			for role := range cfg.Clients {
				roles = append(roles, role)
			}
			cluster := buildCluster(ctx.StringSlice("remote"), ctx.Bool("local"), roles, log)

			h := workunit.New(cluster, ctx.String("testdir"), ctx.String("git-url"), log)
			try.Do(func() {
				h.Task(cfg, overrides)
			}).Catch(def.ValidationError, func(err *errors.Error) {
				panic(Error.NewWith(err.Message(), SetExitCode(EXIT_USER)))
			}).CatchAll(func(err error) {
				panic(Error.NewWith("workunit run failed: "+errors.GetMessage(err), SetExitCode(EXIT_JOB)))
			}).Done()
		},
	}
}

func parseWorkunitConfig(ser []byte) *def.WorkunitConfig {
	var cfg *def.WorkunitConfig
	try.Do(func() {
		cfg = def.ParseWorkunitYaml(ser)
	}).Catch(def.ParseError, func(err *errors.Error) {
		panic(Error.NewWith(err.Message(), SetExitCode(EXIT_BADARGS)))
	}).Done()
	return cfg
}
