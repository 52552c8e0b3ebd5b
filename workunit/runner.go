package workunit

import (
	"path"
	"sort"

	"github.com/kballard/go-shellquote"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

/*
	RunTests is one role's execution unit: bootstrap the runtime if one
	is wanted, fetch the workunit tree at refspec, discover and select
	workunits, and run each under the configured constraints.

	Everything in here is strictly sequential; concurrency lives one
	level up, between roles.  The fetched source, the fallback clone
	directory, and the discovery listing are removed on every exit
	path once the fetch has happened, no matter which step fails.

	Raises on the first failing workunit; remaining selectors and
	workunits for this role are abandoned.
*/
func (h *Harness) RunTests(runID string, refspec string, role def.Role, specs []string, cfg *def.WorkunitConfig) {
	cluster, _, _ := role.Split()
	id := role.ClientID()
	remote := h.cluster.Resolve(role)
	log := h.log.New("run", runID, "role", string(role))

	interp := h.ensureRuntime(remote, log, cfg)

	mnt := h.clientMountpoint(role)
	// subdir so we can remove and recreate this a lot without sudo
	scratchTmp := path.Join(mnt, "client."+id, "tmp")
	if cfg.Subdir != "" {
		scratchTmp = path.Join(mnt, cfg.Subdir)
	}
	srcdir := h.srcdirPath(role)
	clonedir := h.clonedirPath()
	listing := h.listingPath(role)

	fetcherFor(h.gitURL).fetch(remote, log, refspec, srcdir, clonedir)

	timeout := cfg.ResolvedTimeout()

	try.Do(func() {
		units := h.discoverWorkunits(remote, log, role, srcdir)

		for _, spec := range specs {
			log.Info("running workunits matching spec", "spec", spec)
			for _, unit := range selectWorkunits(units, spec) {
				log.Info("running workunit", "workunit", unit)
				args := []interface{}{
					"mkdir", "-p", "--", scratchTmp,
					orchestra.Raw("&&"),
					"cd", "--", scratchTmp,
					orchestra.Raw("&&"),
					orchestra.Raw("CEPH_CLI_TEST_DUP_COMMAND=1"),
					orchestra.Raw("CEPH_REF=" + refspec),
					orchestra.Raw(`TESTDIR="` + h.testdir + `"`),
					orchestra.Raw(`CEPH_ARGS="--cluster ` + cluster + `"`),
					orchestra.Raw(`CEPH_ID="` + id + `"`),
					orchestra.Raw("PATH=$PATH:/usr/sbin"),
				}
				// User env values are opaque strings; quote each one
				// individually so the shell never re-interprets them.
				for _, name := range sortedKeys(cfg.Env) {
					args = append(args, orchestra.Raw(name+"="+shellquote.Join(cfg.Env[name])))
				}
				args = append(args,
					"adjust-ulimits",
					"ceph-coverage",
					h.testdir+"/archive/coverage",
				)
				if timeout != "0" {
					args = append(args, "timeout", timeout)
				}
				if cfg.Python != "" {
					// Pure-python workunits dispatch through the
					// interpreter explicitly, not their executable bit.
					args = append(args, "env", "--", interp)
				}
				args = append(args, srcdir+"/"+unit)
				remote.Run(orchestra.RunOpts{
					Log:   log,
					Label: "workunit test " + unit,
					Args:  args,
				})
				remote.Run(orchestra.RunOpts{
					Log:  log,
					Args: []interface{}{"sudo", "rm", "-rf", "--", scratchTmp},
				})
			}
		}
	}).Finally(func() {
		log.Info("stopping tests", "role", string(role))
		remote.Run(orchestra.RunOpts{
			Log:  log,
			Args: []interface{}{"rm", "-rf", "--", listing, srcdir, clonedir},
		})
	}).Done()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
