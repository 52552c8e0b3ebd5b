package cli

import (
	"io"
	"strings"

	"github.com/codegangsta/cli"
	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/lfn"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

func LFNCommandPattern(journal io.Writer) cli.Command {
	return cli.Command{
		Name:  "lfn-check",
		Usage: "Create, verify, and delete objects with long or edge-case names in a pool",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config, f",
				Usage: "Location of the check config (yaml format); defaults apply when omitted",
			},
			cli.StringFlag{
				Name:  "remote, r",
				Usage: "Host carrying the rados tool, as [user@]host; local shell when omitted",
			},
		},
		Action: func(ctx *cli.Context) {
			log := newJournalLogger(journal)

			cfg := &def.LFNConfig{}
			if path := ctx.String("config"); path != "" {
				try.Do(func() {
					cfg = def.ParseLFNYaml(readConfigFile(path))
				}).Catch(def.ParseError, func(err *errors.Error) {
					panic(Error.NewWith(err.Message(), SetExitCode(EXIT_BADARGS)))
				}).Done()
			}

			var remote orchestra.Remote
			if host := ctx.String("remote"); host != "" {
				account := ""
				if at := strings.Index(host, "@"); at >= 0 {
					account = host[:at]
					host = host[at+1:]
				}
				remote = &orchestra.SSHRemote{Host: host, Account: account, Logger: log}
			} else {
				remote = &orchestra.LocalRemote{Logger: log}
			}

			store := &lfn.RadosStore{Remote: remote, Log: log}
			try.Do(func() {
				lfn.Check(store, *cfg, log)
			}).CatchAll(func(err error) {
				panic(Error.NewWith("lfn check failed: "+errors.GetMessage(err), SetExitCode(EXIT_JOB)))
			}).Done()
		},
	}
}
