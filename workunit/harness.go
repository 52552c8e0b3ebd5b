package workunit

import (
	"path"

	"github.com/inconshreveable/log15"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

const (
	// Upstream whose presence in the configured git url selects the
	// archive-transfer fast path.
	CanonicalGitURL = "https://github.com/ceph/ceph.git"

	// Mirror the archive fast path streams from.
	archiveRemote = "git://git.ceph.com/ceph.git"
)

/*
	Harness drives workunit orchestration runs against one cluster.

	All state is transient and scoped to a single Task invocation; the
	harness itself holds only the wiring: topology, the base test
	directory on the remotes, and the upstream to fetch from.
*/
type Harness struct {
	cluster orchestra.Cluster
	testdir string
	gitURL  string
	log     log15.Logger
}

func New(cluster orchestra.Cluster, testdir string, gitURL string, log log15.Logger) *Harness {
	if testdir == "" {
		testdir = "/home/ubuntu/cephtest"
	}
	if gitURL == "" {
		gitURL = CanonicalGitURL
	}
	if log == nil {
		log = log15.New()
	}
	return &Harness{
		cluster: cluster,
		testdir: testdir,
		gitURL:  gitURL,
		log:     log,
	}
}

/*
	clientMountpoint is where a role's filesystem would be mounted by
	tasks like ceph-fuse.  The cluster name only appears in the path
	for non-default clusters: tasks that aren't cluster-aware yet still
	need to find "mnt.<id>" where they always have.
*/
func (h *Harness) clientMountpoint(role def.Role) string {
	cluster, _, id := role.Split()
	if cluster == def.DefaultCluster {
		return path.Join(h.testdir, "mnt."+id)
	}
	return path.Join(h.testdir, "mnt."+cluster+"."+id)
}

func (h *Harness) srcdirPath(role def.Role) string {
	return h.testdir + "/workunit." + string(role)
}

func (h *Harness) clonedirPath() string {
	return h.testdir + "/clone"
}

// Listing files are role-qualified so concurrent units sharing a
// physical host never clobber each other's discovery artifact.
func (h *Harness) listingPath(role def.Role) string {
	return h.testdir + "/workunits.list." + string(role)
}
