package orchestra

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spacemonkeygo/errors"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/testutil"
)

func TestFlatten(t *testing.T) {
	Convey("Command line flattening", t, func() {
		Convey("plain strings come out one token each", func() {
			So(Flatten([]interface{}{"stat", "--", "/tmp/mnt.0"}),
				ShouldEqual, "stat -- /tmp/mnt.0")
		})

		Convey("a string with shell metacharacters stays one token", func() {
			So(Flatten([]interface{}{"echo", "a b; rm -rf /"}),
				ShouldEqual, "echo 'a b; rm -rf /'")
		})

		Convey("raw fragments splice through unquoted", func() {
			So(Flatten([]interface{}{"cd", "--", "/tmp", Raw("&&"), "mkdir", "x"}),
				ShouldEqual, "cd -- /tmp && mkdir x")
			So(Flatten([]interface{}{Raw("FOO='a b'"), "cmd"}),
				ShouldEqual, "FOO='a b' cmd")
		})

		Convey("roles are accepted as plain tokens", func() {
			So(Flatten([]interface{}{"echo", def.Role("client.0")}),
				ShouldEqual, "echo client.0")
		})

		Convey("anything else is a programmer error", func() {
			So(func() { Flatten([]interface{}{42}) },
				testutil.ShouldPanicWith, errors.ProgrammerError)
		})
	})
}

func TestFailCommand(t *testing.T) {
	Convey("Command failure errors", t, func() {
		err := FailCommand(42, "stat -- /gone")

		Convey("carry the class, the command, and the exit status", func() {
			So(err, testutil.ShouldBeErrorClass, CommandFailedError)
			So(errors.GetData(err, CommandKey), ShouldEqual, "stat -- /gone")
			So(ExitCode(err), ShouldEqual, 42)
		})

		Convey("unrelated errors have no exit status to offer", func() {
			So(ExitCode(Error.New("nope")), ShouldEqual, -1)
		})
	})
}

func TestStaticCluster(t *testing.T) {
	Convey("Given a static role map", t, func() {
		cluster := &StaticCluster{Remotes: map[def.Role]Remote{
			"client.1": nil,
			"client.0": nil,
			"osd.0":    nil,
			"mon.a":    nil,
		}}

		Convey("ClientRoles lists only client roles, sorted", func() {
			So(cluster.ClientRoles(), ShouldResemble, []def.Role{"client.0", "client.1"})
		})

		Convey("Resolve refuses unmapped roles", func() {
			So(func() { cluster.Resolve("client.9") }, testutil.ShouldPanicWith, Error)
		})
	})
}
