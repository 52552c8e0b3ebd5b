package workunit

import (
	"github.com/inconshreveable/log15"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

const getPipURL = "https://bootstrap.pypa.io/get-pip.py"

/*
	ensureRuntime conditionally provisions a python interpreter on the
	remote, returning the interpreter name ("" when none is wanted).

	A runtime is wanted either because the config asks for one
	directly (pure-python workunits, which will be dispatched through
	the interpreter explicitly) or because the user env carries a
	PYTHON override (shell workunits that merely *call* some python
	program; those still dispatch on their executable bit).
*/
func (h *Harness) ensureRuntime(remote orchestra.Remote, log log15.Logger, cfg *def.WorkunitConfig) string {
	python := ""
	if cfg.Env != nil {
		python = cfg.Env["PYTHON"]
	}
	if cfg.Python != "" {
		python = "python" + cfg.Python
	}
	if python == "" {
		return ""
	}

	pip := "pip"
	if python == "python3" {
		pip = "pip3"
	}

	switch remote.SystemType() {
	case "rpm":
		log.Info("installing python package", "python", python, "remote", remote.Name())
		args := []interface{}{"sudo", "yum", "install", "-y"}
		if python == "python3" {
			args = append(args, "python34")
		} else {
			args = append(args, "python27")
		}
		remote.Run(orchestra.RunOpts{Log: log, Args: args})
	case "deb":
		log.Info("installing python package", "python", python, "remote", remote.Name())
		args := []interface{}{"sudo", "apt-get", "-y", "--force-yes", "install"}
		if python == "python2" {
			args = append(args, "python2.7")
		}
		remote.Run(orchestra.RunOpts{Log: log, Args: args})
	}

	log.Info("installing pip", "python", python, "remote", remote.Name())
	remote.Run(orchestra.RunOpts{
		Log: log,
		Args: []interface{}{
			"wget", getPipURL,
			orchestra.Raw("&&"),
			"sudo", "-H", "--", python, "get-pip.py",
		},
	})

	log.Info("installing pip packages", "pip", pip, "remote", remote.Name())
	remote.Run(orchestra.RunOpts{
		Log: log,
		Args: []interface{}{
			"sudo", "-H", "--", pip, "install", "--upgrade", "requests", "pytest",
		},
	})

	return python
}
