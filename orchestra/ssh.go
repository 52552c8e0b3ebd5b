package orchestra

import (
	"bytes"
	"io"

	"github.com/inconshreveable/log15"
	"github.com/polydawn/gosh"
)

var _ Remote = &SSHRemote{}

/*
	SSHRemote issues commands on a machine over ssh.

	The flattened command line travels as a single argument, so quoting
	decisions made by Flatten survive the hop intact.  BatchMode keeps
	a missing key from degenerating into a password prompt hanging the
	whole wave.
*/
type SSHRemote struct {
	Host     string
	Account  string // login account; "ubuntu" when empty
	PkgStyle string // "rpm" or "deb"; "deb" when empty
	Logger   log15.Logger
}

var ssh gosh.Command = gosh.Gosh(
	"ssh",
	"-o", "BatchMode=yes",
	"-o", "StrictHostKeyChecking=no",
	gosh.NullIO,
)

func (r *SSHRemote) Name() string { return r.Host }

func (r *SSHRemote) User() string {
	if r.Account == "" {
		return "ubuntu"
	}
	return r.Account
}

func (r *SSHRemote) SystemType() string {
	if r.PkgStyle == "" {
		return "deb"
	}
	return r.PkgStyle
}

func (r *SSHRemote) Run(opts RunOpts) {
	r.exec(opts, nil)
}

func (r *SSHRemote) Output(opts RunOpts) string {
	var buf bytes.Buffer
	r.exec(opts, &buf)
	return buf.String()
}

func (r *SSHRemote) exec(opts RunOpts, out io.Writer) {
	cmdline := Flatten(opts.Args)
	log := opts.Log
	if log == nil {
		log = r.logger()
	}
	if opts.Label != "" {
		log.Info("running remote command", "label", opts.Label, "remote", r.Name(), "cmd", cmdline)
	} else {
		log.Debug("running remote command", "remote", r.Name(), "cmd", cmdline)
	}
	cmd := ssh.Bake(
		r.User()+"@"+r.Host,
		"--", cmdline,
		gosh.Opts{OkExit: gosh.AnyExit},
	)
	if out != nil {
		cmd = cmd.Bake(gosh.Opts{Out: out})
	}
	p := cmd.Run()
	if code := p.GetExitCode(); code != 0 {
		panic(FailCommand(code, cmdline))
	}
}

func (r *SSHRemote) logger() log15.Logger {
	if r.Logger == nil {
		r.Logger = log15.New("remote", r.Host)
	}
	return r.Logger
}
