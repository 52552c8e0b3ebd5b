package workunit

import (
	"github.com/spacemonkeygo/errors"
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("WorkunitError")

/*
	Raised when a selector matches no discovered workunit.

	A selector that hits nothing is a config typo or a tree change, and
	either way silently running zero tests would be the worst possible
	behavior; the unit aborts instead, before any selector after it.
*/
var SpecMatchError *errors.ErrorClass = Error.NewClass("SpecMatchError")

/*
	Raised when fetching the workunit tree fails -- either the archive
	transfer fast path or the clone+checkout fallback.  The strategy is
	picked once per fetch; a failed strategy is never retried with the
	other one, since masking a network or refspec problem behind an
	automatic fallback just moves the confusion downstream.
*/
var FetchError *errors.ErrorClass = Error.NewClass("FetchError")

/*
	Raised when discovery finds no executable files in a fetched tree.
	An empty set means the fetch landed somewhere unexpected or the
	refspec points at a tree with no tests; both deserve a loud stop.
*/
var DiscoverError *errors.ErrorClass = Error.NewClass("DiscoverError")
