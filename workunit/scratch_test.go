package workunit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/testutil"
)

func TestScratchLifecycle(t *testing.T) {
	Convey("Given a role whose mountpoint already exists", t, func() {
		j := &journal{}
		remote := newFakeRemote(j, "smithi01")
		role := def.Role("client.0")
		h := New(singleRemoteCluster(role, remote), "/testdir", "", testutil.QuietLogger())

		scratch := h.MakeScratchDir(role, "")

		Convey("the scratch is not marked created", func() {
			So(scratch.Created, ShouldBeFalse)
			So(scratch.Mountpoint, ShouldEqual, "/testdir/mnt.0")
		})

		Convey("the subdir goes in with a privileged ownership-aware install", func() {
			So(j.first("cd -- /testdir/mnt.0 && sudo install -d -m 0755 --owner=ubuntu -- client.0"), ShouldBeGreaterThanOrEqualTo, 0)
			So(j.first("mkdir -- /testdir/mnt.0"), ShouldEqual, -1)
		})

		Convey("teardown removes only the inner client directory", func() {
			h.DeleteScratchDir(role, scratch)
			So(j.first("sudo rm -rf -- /testdir/mnt.0/client.0"), ShouldBeGreaterThanOrEqualTo, 0)
			So(j.first("rmdir -- /testdir/mnt.0"), ShouldEqual, -1)
		})
	})

	Convey("Given a role whose mountpoint does not exist", t, func() {
		j := &journal{}
		remote := newFakeRemote(j, "smithi01")
		remote.statFails = true
		role := def.Role("client.0")
		h := New(singleRemoteCluster(role, remote), "/testdir", "", testutil.QuietLogger())

		scratch := h.MakeScratchDir(role, "")

		Convey("the probe failure picks the creating branch", func() {
			So(scratch.Created, ShouldBeTrue)
			So(j.first("mkdir -- /testdir/mnt.0"), ShouldBeGreaterThanOrEqualTo, 0)
			So(j.first("cd -- /testdir/mnt.0 && mkdir -- client.0"), ShouldBeGreaterThanOrEqualTo, 0)
			So(j.first("sudo install"), ShouldEqual, -1)
		})

		Convey("teardown removes the mountpoint too", func() {
			h.DeleteScratchDir(role, scratch)
			So(j.first("sudo rm -rf -- /testdir/mnt.0/client.0"), ShouldBeGreaterThanOrEqualTo, 0)
			So(j.first("rmdir -- /testdir/mnt.0"), ShouldBeGreaterThanOrEqualTo, 0)
		})
	})

	Convey("Given a role in a non-default cluster", t, func() {
		j := &journal{}
		remote := newFakeRemote(j, "smithi02")
		role := def.Role("backup.client.1")
		h := New(singleRemoteCluster(role, remote), "/testdir", "", testutil.QuietLogger())

		Convey("the cluster name appears in the mountpoint path", func() {
			scratch := h.MakeScratchDir(role, "")
			So(scratch.Mountpoint, ShouldEqual, "/testdir/mnt.backup.1")
		})
	})

	Convey("A non-client role is refused before any remote interaction", t, func() {
		j := &journal{}
		remote := newFakeRemote(j, "smithi03")
		role := def.Role("osd.0")
		h := New(singleRemoteCluster(role, remote), "/testdir", "", testutil.QuietLogger())

		So(func() { h.MakeScratchDir(role, "") }, testutil.ShouldPanicWith, def.ValidationError)
		So(j.lines(), ShouldBeEmpty)
	})
}
