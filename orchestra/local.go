package orchestra

import (
	"bytes"
	"io"
	"os"
	"os/user"

	"github.com/inconshreveable/log15"
	"github.com/polydawn/gosh"
)

var _ Remote = &LocalRemote{}

/*
	LocalRemote issues "remote" commands against the local host via the
	shell.  Mostly useful for smoke tests and single-machine setups;
	the command-line construction path is identical to the ssh route.
*/
type LocalRemote struct {
	Logger log15.Logger
}

var sh gosh.Command = gosh.Gosh("/bin/sh", gosh.NullIO)

func (r *LocalRemote) Name() string { return "localhost" }

func (r *LocalRemote) User() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "root"
}

func (r *LocalRemote) SystemType() string {
	if _, err := os.Stat("/etc/debian_version"); err == nil {
		return "deb"
	}
	return "rpm"
}

func (r *LocalRemote) Run(opts RunOpts) {
	r.exec(opts, nil)
}

func (r *LocalRemote) Output(opts RunOpts) string {
	var buf bytes.Buffer
	r.exec(opts, &buf)
	return buf.String()
}

func (r *LocalRemote) exec(opts RunOpts, out io.Writer) {
	cmdline := Flatten(opts.Args)
	log := opts.Log
	if log == nil {
		log = r.logger()
	}
	if opts.Label != "" {
		log.Info("running local command", "label", opts.Label, "cmd", cmdline)
	} else {
		log.Debug("running local command", "cmd", cmdline)
	}
	cmd := sh.Bake("-c", cmdline, gosh.Opts{OkExit: gosh.AnyExit})
	if out != nil {
		cmd = cmd.Bake(gosh.Opts{Out: out})
	}
	p := cmd.Run()
	if code := p.GetExitCode(); code != 0 {
		panic(FailCommand(code, cmdline))
	}
}

func (r *LocalRemote) logger() log15.Logger {
	if r.Logger == nil {
		r.Logger = log15.New("remote", "localhost")
	}
	return r.Logger
}
