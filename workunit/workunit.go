package workunit

import (
	"sort"

	"github.com/inconshreveable/log15"
	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/lib/guid"
	"github.com/ryneli/ceph-qa-suite/lib/parallel"
)

/*
	Task runs a full workunit orchestration: every explicit role's
	selectors concurrently in a first wave, then -- if the config has
	an "all" entry -- every discovered client role in a second wave,
	staged selector by selector.

	The staging in the second wave is intentional: all roles finish
	selector N before any role starts selector N+1, so an early
	selector's side effects can never race a later selector's across
	roles.  Per role and wave the lifecycle is strictly
	unprovisioned -> provisioned -> running -> torn-down; teardown is
	attempted for every provisioned role even when units failed, and
	the first unit failure resurfaces after the wave barrier.
*/
func (h *Harness) Task(cfg *def.WorkunitConfig, overrides *def.WorkunitConfig) {
	if overrides != nil {
		cfg.ApplyOverrides(*overrides)
	}
	cfg.Validate()

	refspec := cfg.Refspec()
	resolved := *cfg
	resolved.Timeout = cfg.ResolvedTimeout()

	runID := guid.New()
	log := h.log.New("run", runID)
	log.Info("pulling workunits", "refspec", refspec, "timeout", resolved.Timeout)

	// Phase 1: explicit roles.
	var roles []def.Role
	for r := range cfg.Clients {
		if r != "all" {
			roles = append(roles, def.Role(r))
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	if len(roles) > 0 {
		log.Info("making a separate scratch dir for every client")
		created := map[def.Role]Scratch{}
		for _, role := range roles {
			created[role] = h.MakeScratchDir(role, cfg.Subdir)
		}

		var wave parallel.Collector
		for _, role := range roles {
			role := role
			specs := cfg.Clients[string(role)]
			wave.Spawn(func() {
				h.runUnit(log, runID, refspec, role, specs, &resolved)
			})
		}
		try.Do(wave.Join).Finally(func() {
			h.teardownScratch(log, roles, created)
		}).Done()
	}

	// Phase 2: the "all" wave.
	if specs, ok := cfg.Clients["all"]; ok {
		h.spawnOnAllClients(log, runID, refspec, specs, &resolved)
	}
}

/*
	spawnOnAllClients provisions a scratch dir for every client role in
	the topology, then fans each selector out across all of them,
	selector-major, before tearing everything down.
*/
func (h *Harness) spawnOnAllClients(log log15.Logger, runID, refspec string, specs []string, cfg *def.WorkunitConfig) {
	roles := h.cluster.ClientRoles()
	if len(roles) == 0 {
		panic(Error.New("the 'all' wave found no client roles in the cluster"))
	}

	created := map[def.Role]Scratch{}
	for _, role := range roles {
		created[role] = h.MakeScratchDir(role, cfg.Subdir)
	}

	try.Do(func() {
		for _, spec := range specs {
			var wave parallel.Collector
			for _, role := range roles {
				role := role
				spec := spec
				wave.Spawn(func() {
					h.runUnit(log, runID, refspec, role, []string{spec}, cfg)
				})
			}
			wave.Join()
		}
	}).Finally(func() {
		h.teardownScratch(log, roles, created)
	}).Done()
}

// runUnit wraps one role's execution unit so its failure is logged
// with role context before the collector hears about it.
func (h *Harness) runUnit(log log15.Logger, runID, refspec string, role def.Role, specs []string, cfg *def.WorkunitConfig) {
	try.Do(func() {
		h.RunTests(runID, refspec, role, specs, cfg)
	}).CatchAll(func(err error) {
		log.Error("workunit execution unit failed",
			"role", string(role),
			"err", errors.GetMessage(err),
		)
		panic(err)
	}).Done()
}

// Best-effort, per role: a failed teardown on one role must not keep
// the next role's directories around too.
func (h *Harness) teardownScratch(log log15.Logger, roles []def.Role, created map[def.Role]Scratch) {
	for _, role := range roles {
		role := role
		try.Do(func() {
			h.DeleteScratchDir(role, created[role])
		}).CatchAll(func(err error) {
			log.Warn("scratch dir teardown failed",
				"role", string(role),
				"err", errors.GetMessage(err),
			)
		}).Done()
	}
}
