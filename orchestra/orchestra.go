package orchestra

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/kballard/go-shellquote"
	"github.com/spacemonkeygo/errors"

	"github.com/ryneli/ceph-qa-suite/def"
)

/*
	Raw marks an argument fragment to be spliced into the remote
	command line without quoting: shell operators ("&&", "|", ">out")
	and environment assignments whose values are already quoted.
*/
type Raw string

/*
	RunOpts describes one remote command invocation.

	Args is an ordered mix of plain strings (quoted on the wire) and
	Raw fragments (spliced verbatim).  Label, when set, tags the
	invocation in logs so external tooling can correlate output with a
	particular workunit.
*/
type RunOpts struct {
	Args  []interface{}
	Label string
	Log   log15.Logger
}

/*
	Remote is the command-issuance surface of one remote machine.

	Run and Output panic a CommandFailedError when the remote command
	exits nonzero; there are no silent failures and no retries at this
	layer.
*/
type Remote interface {
	// Name is a short display name for logs, typically the hostname.
	Name() string

	// User is the login account owning the test directories.
	User() string

	// SystemType reports the package family of the remote OS:
	// "rpm" or "deb".
	SystemType() string

	Run(opts RunOpts)

	// Output runs the command and returns its stdout.
	Output(opts RunOpts) string
}

/*
	Cluster resolves roles onto remotes and enumerates the client-type
	roles known to the topology (the "all" wave runs on every one of
	those).
*/
type Cluster interface {
	Resolve(role def.Role) Remote
	ClientRoles() []def.Role
}

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("OrchestraError")

/*
	Raised when a remote command exits nonzero.  Carries the flattened
	command line and the exit status as error data.
*/
var CommandFailedError *errors.ErrorClass = Error.NewClass("CommandFailedError")

var (
	CommandKey  = errors.GenSym()
	ExitCodeKey = errors.GenSym()
)

func FailCommand(exitCode int, cmdline string) error {
	return CommandFailedError.NewWith(
		fmt.Sprintf("command %q failed with status %d", cmdline, exitCode),
		errors.SetData(CommandKey, cmdline),
		errors.SetData(ExitCodeKey, exitCode),
	)
}

// ExitCode digs the remote exit status back out of a
// CommandFailedError.  Returns -1 when the error carries none.
func ExitCode(err error) int {
	code, ok := errors.GetData(err, ExitCodeKey).(int)
	if !ok {
		return -1
	}
	return code
}

/*
	Flatten renders an argument list into the single command line
	handed to the remote shell.  Plain strings come out shell-quoted as
	one token each; Raw fragments pass through untouched.
*/
func Flatten(args []interface{}) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case Raw:
			parts = append(parts, string(arg))
		case string:
			parts = append(parts, shellquote.Join(arg))
		case def.Role:
			parts = append(parts, shellquote.Join(string(arg)))
		default:
			panic(errors.ProgrammerError.New("cannot flatten argument of type %T", arg))
		}
	}
	return strings.Join(parts, " ")
}

/*
	StaticCluster is a Cluster backed by a literal role map.  Topology
	discovery is someone else's department; tooling hands us the
	role->host mapping it already knows.
*/
type StaticCluster struct {
	Remotes map[def.Role]Remote
}

func (c *StaticCluster) Resolve(role def.Role) Remote {
	remote, ok := c.Remotes[role]
	if !ok {
		panic(Error.New("no remote mapped for role %q", string(role)))
	}
	return remote
}

// ClientRoles lists the client-type roles in sorted order, so wave
// scheduling is deterministic.
func (c *StaticCluster) ClientRoles() []def.Role {
	var roles []def.Role
	for role := range c.Remotes {
		if _, typ, _ := role.Split(); typ == "client" {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
