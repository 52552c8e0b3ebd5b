package workunit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/testutil"
)

func TestSelectWorkunits(t *testing.T) {
	Convey("Given a discovered workunit set", t, func() {
		set := []string{"a", "a/b", "ab"}

		Convey("a spec matches itself and its directory children", func() {
			So(selectWorkunits(set, "a"), ShouldResemble, []string{"a", "a/b"})
		})

		Convey("a spec does not match on bare string prefix", func() {
			So(selectWorkunits(set, "ab"), ShouldResemble, []string{"ab"})
		})

		Convey("a spec matching nothing raises a SpecMatchError", func() {
			So(func() { selectWorkunits(set, "zzz") }, testutil.ShouldPanicWith, SpecMatchError)
		})
	})
}

func TestDiscoverWorkunits(t *testing.T) {
	Convey("Given a harness against a scripted remote", t, func() {
		j := &journal{}
		remote := newFakeRemote(j, "smithi01")
		role := def.Role("client.0")
		h := New(singleRemoteCluster(role, remote), "/testdir", "", testutil.QuietLogger())

		Convey("discovery sorts the listing and drops empty entries", func() {
			remote.listing = "b\x00a\x00c/d\x00"
			units := h.discoverWorkunits(remote, h.log, role, "/testdir/workunit.client.0")
			So(units, ShouldResemble, []string{"a", "b", "c/d"})
		})

		Convey("the listing artifact is role-qualified", func() {
			remote.listing = "a\x00"
			h.discoverWorkunits(remote, h.log, role, "/testdir/workunit.client.0")
			So(j.first(">/testdir/workunits.list.client.0"), ShouldBeGreaterThanOrEqualTo, 0)
		})

		Convey("an empty discovery raises", func() {
			remote.listing = ""
			So(func() {
				h.discoverWorkunits(remote, h.log, role, "/testdir/workunit.client.0")
			}, testutil.ShouldPanicWith, DiscoverError)
		})
	})
}
