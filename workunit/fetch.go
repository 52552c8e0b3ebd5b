package workunit

import (
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/orchestra"
)

/*
	fetcher is the strategy for landing one refspec's qa/workunits
	subtree on a remote.

	Two variants: an archive transfer against the canonical mirror
	(fast -- one pipelined stream, no history), and a full clone plus
	checkout (slow, but works against any upstream).  Selection happens
	once, by url, in fetcherFor; a failed strategy is never retried
	with the other one.
*/
type fetcher interface {
	fetch(remote orchestra.Remote, log log15.Logger, refspec, srcdir, clonedir string)
}

func fetcherFor(gitURL string) fetcher {
	if strings.Contains(gitURL, "github.com/ceph/ceph") {
		return archiveFetcher{}
	}
	return cloneFetcher{url: gitURL}
}

type archiveFetcher struct{}

func (archiveFetcher) fetch(remote orchestra.Remote, log log15.Logger, refspec, srcdir, clonedir string) {
	runFetch(remote, orchestra.RunOpts{
		Log: log,
		Args: []interface{}{
			"mkdir", "--", srcdir,
			orchestra.Raw("&&"),
			"git", "archive",
			"--remote=" + archiveRemote,
			refspec + ":qa/workunits",
			orchestra.Raw("|"),
			"tar", "-C", srcdir, "-x", "-f-",
		},
	})
}

type cloneFetcher struct {
	url string
}

func (f cloneFetcher) fetch(remote orchestra.Remote, log log15.Logger, refspec, srcdir, clonedir string) {
	runFetch(remote, orchestra.RunOpts{
		Log: log,
		Args: []interface{}{
			"git", "clone", f.url, clonedir,
			orchestra.Raw(";"),
			"cd", "--", clonedir,
			orchestra.Raw("&&"),
			"git", "checkout", refspec,
			orchestra.Raw("&&"),
			"mv", "qa/workunits", srcdir,
		},
	})
}

func runFetch(remote orchestra.Remote, opts orchestra.RunOpts) {
	try.Do(func() {
		remote.Run(opts)
	}).Catch(orchestra.CommandFailedError, func(err *errors.Error) {
		panic(FetchError.Wrap(err))
	}).Done()
}
