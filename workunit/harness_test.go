package workunit

import (
	"strings"
	"sync"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

/*
	journal gathers the command lines every fake remote runs, in global
	issue order, so tests can assert cross-role and cross-phase
	ordering.
*/
type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(remote, line string) {
	j.mu.Lock()
	j.events = append(j.events, remote+": "+line)
	j.mu.Unlock()
}

func (j *journal) lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

// indices returns the positions of every event containing substr.
func (j *journal) indices(substr string) []int {
	var hits []int
	for i, line := range j.lines() {
		if strings.Contains(line, substr) {
			hits = append(hits, i)
		}
	}
	return hits
}

// exactIndices matches on the whole command line, which matters when
// one command line is a path-prefix of another.
func (j *journal) exactIndices(cmdline string) []int {
	var hits []int
	for i, line := range j.lines() {
		if strings.HasSuffix(line, ": "+cmdline) {
			hits = append(hits, i)
		}
	}
	return hits
}

func (j *journal) firstExact(cmdline string) int {
	hits := j.exactIndices(cmdline)
	if len(hits) == 0 {
		return -1
	}
	return hits[0]
}

func (j *journal) first(substr string) int {
	hits := j.indices(substr)
	if len(hits) == 0 {
		return -1
	}
	return hits[0]
}

func (j *journal) last(substr string) int {
	hits := j.indices(substr)
	if len(hits) == 0 {
		return -1
	}
	return hits[len(hits)-1]
}

type failRule struct {
	substr string
	code   int
}

/*
	fakeRemote scripts the command surface: it records everything, can
	refuse the stat probe (simulating an absent mountpoint), fail
	commands matching a substring, and answer `cat` of a listing file
	with a canned NUL-separated workunit set.
*/
type fakeRemote struct {
	name      string
	system    string
	journal   *journal
	statFails bool
	failures  []failRule
	listing   string

	mu     sync.Mutex
	labels []string
}

func newFakeRemote(j *journal, name string) *fakeRemote {
	return &fakeRemote{
		name:    name,
		system:  "deb",
		journal: j,
		listing: "direct_io\x00snaps\x00",
	}
}

func (r *fakeRemote) Name() string       { return r.name }
func (r *fakeRemote) User() string       { return "ubuntu" }
func (r *fakeRemote) SystemType() string { return r.system }

func (r *fakeRemote) Run(opts orchestra.RunOpts) {
	line := orchestra.Flatten(opts.Args)
	r.journal.add(r.name, line)
	if opts.Label != "" {
		r.mu.Lock()
		r.labels = append(r.labels, opts.Label)
		r.mu.Unlock()
	}
	if r.statFails && strings.HasPrefix(line, "stat --") {
		panic(orchestra.FailCommand(1, line))
	}
	for _, rule := range r.failures {
		if strings.Contains(line, rule.substr) {
			panic(orchestra.FailCommand(rule.code, line))
		}
	}
}

func (r *fakeRemote) Output(opts orchestra.RunOpts) string {
	line := orchestra.Flatten(opts.Args)
	r.journal.add(r.name, line)
	if strings.HasPrefix(line, "cat --") {
		return r.listing
	}
	return ""
}

func (r *fakeRemote) ranLabels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}

func singleRemoteCluster(role def.Role, remote orchestra.Remote) orchestra.Cluster {
	return &orchestra.StaticCluster{Remotes: map[def.Role]orchestra.Remote{role: remote}}
}
