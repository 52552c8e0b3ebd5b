package workunit

import (
	"sort"
	"strings"

	"github.com/inconshreveable/log15"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

/*
	discoverWorkunits enumerates the executable files in a fetched
	tree.

	Runs any build step first (tolerant of absence -- most trees have
	no Makefile), then finds executable regular files, NUL-separated so
	arbitrary names survive, into a role-qualified listing file.  The
	result is relative paths, sorted lexicographically, and it is an
	error for it to be empty.
*/
func (h *Harness) discoverWorkunits(remote orchestra.Remote, log log15.Logger, role def.Role, srcdir string) []string {
	listing := h.listingPath(role)
	remote.Run(orchestra.RunOpts{
		Log: log,
		Args: []interface{}{
			"cd", "--", srcdir,
			orchestra.Raw("&&"),
			"if", "test", "-e", "Makefile", orchestra.Raw(";"), "then", "make", orchestra.Raw(";"), "fi",
			orchestra.Raw("&&"),
			"find", "-executable", "-type", "f", "-printf", `%P\0`,
			orchestra.Raw(">" + listing),
		},
	})

	out := remote.Output(orchestra.RunOpts{
		Log:  log,
		Args: []interface{}{"cat", "--", listing},
	})
	var units []string
	for _, w := range strings.Split(out, "\x00") {
		if w != "" {
			units = append(units, w)
		}
	}
	sort.Strings(units)
	if len(units) == 0 {
		panic(DiscoverError.New("no executable workunits found under %s", srcdir))
	}
	return units
}

/*
	selectWorkunits resolves one selector against the discovered set:
	a workunit matches on exact equality or when it lives under the
	selector as a directory prefix.  Matches keep discovery order.

	An empty match set fails immediately -- there is no partial credit
	for a selector that names nothing.
*/
func selectWorkunits(units []string, spec string) []string {
	prefix := spec + "/"
	var matches []string
	for _, w := range units {
		if w == spec || strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
	}
	if len(matches) == 0 {
		panic(SpecMatchError.New("spec did not match any workunits: %q", spec))
	}
	return matches
}
