package cli

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/inconshreveable/log15"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

func newJournalLogger(journal io.Writer) log15.Logger {
	log := log15.New()
	log.SetHandler(log15.StreamHandler(journal, log15.TerminalFormat()))
	return log
}

func readConfigFile(path string) []byte {
	if path == "" {
		panic(Error.NewWith("a task config file is required (see the -f flag)", SetExitCode(EXIT_BADARGS)))
	}
	content, err := ioutil.ReadFile(path)
	if err != nil {
		panic(Error.NewWith("could not read config file "+path+": "+err.Error(), SetExitCode(EXIT_BADARGS)))
	}
	return content
}

/*
	buildCluster turns repeated "role=host" mappings into a static
	topology of ssh remotes.  With local set, every listed role maps
	onto the local host instead; roles are then taken from the task
	config's clients.
*/
func buildCluster(mappings []string, local bool, localRoles []string, log log15.Logger) orchestra.Cluster {
	remotes := map[def.Role]orchestra.Remote{}

	if local {
		for _, role := range localRoles {
			if role == "all" {
				continue
			}
			remotes[def.Role(role)] = &orchestra.LocalRemote{Logger: log}
		}
	}

	for _, m := range mappings {
		parts := strings.SplitN(m, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			panic(Error.NewWith("remote mapping '"+m+"' is not of the form role=host", SetExitCode(EXIT_BADARGS)))
		}
		host := parts[1]
		account := ""
		if at := strings.Index(host, "@"); at >= 0 {
			account = host[:at]
			host = host[at+1:]
		}
		remotes[def.Role(parts[0])] = &orchestra.SSHRemote{
			Host:    host,
			Account: account,
			Logger:  log,
		}
	}

	if len(remotes) == 0 {
		panic(Error.NewWith("no remotes: give --remote role=host mappings, or --local", SetExitCode(EXIT_BADARGS)))
	}
	return &orchestra.StaticCluster{Remotes: remotes}
}
