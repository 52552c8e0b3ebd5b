package def

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ryneli/ceph-qa-suite/testutil"
)

func TestParseWorkunitYaml(t *testing.T) {
	Convey("Workunit yaml parsing", t, func() {
		Convey("a full document lands field by field", func() {
			cfg := ParseWorkunitYaml([]byte(
				"clients:\n" +
					"  client.0:\n" +
					"    - direct_io\n" +
					"    - suites/blogbench.sh\n" +
					"  all:\n" +
					"    - snaps\n" +
					"branch: main\n" +
					"timeout: 6h\n" +
					"subdir: shared\n" +
					"env:\n" +
					"  FOO: bar\n",
			))
			So(cfg.Clients["client.0"], ShouldResemble, []string{"direct_io", "suites/blogbench.sh"})
			So(cfg.Clients["all"], ShouldResemble, []string{"snaps"})
			So(cfg.Branch, ShouldEqual, "main")
			So(cfg.Timeout, ShouldEqual, "6h")
			So(cfg.Subdir, ShouldEqual, "shared")
			So(cfg.Env["FOO"], ShouldEqual, "bar")
		})

		Convey("tab-indented documents are accepted", func() {
			cfg := ParseWorkunitYaml([]byte(
				"clients:\n" +
					"\tclient.0:\n" +
					"\t\t- direct_io\n",
			))
			So(cfg.Clients["client.0"], ShouldResemble, []string{"direct_io"})
		})

		Convey("bare numeric scalars are coerced to their string forms", func() {
			cfg := ParseWorkunitYaml([]byte(
				"clients:\n" +
					"  client.0: [direct_io]\n" +
					"timeout: 0\n" +
					"python: 3\n",
			))
			So(cfg.Timeout, ShouldEqual, "0")
			So(cfg.Python, ShouldEqual, "3")
		})

		Convey("'timeout: false' disables the bound", func() {
			cfg := ParseWorkunitYaml([]byte(
				"clients:\n" +
					"  client.0: [direct_io]\n" +
					"timeout: false\n",
			))
			So(cfg.Timeout, ShouldEqual, "0")
		})

		Convey("malformed yaml is refused", func() {
			So(func() {
				ParseWorkunitYaml([]byte("clients: [unclosed\n"))
			}, testutil.ShouldPanicWith, ParseError)
		})
	})
}

func TestParseLFNYaml(t *testing.T) {
	Convey("LFN yaml parsing", t, func() {
		Convey("a full document lands field by field", func() {
			cfg := ParseLFNYaml([]byte(
				"pool: rbd\n" +
					"prefix: lfnobj\n" +
					"namespace: ['', ns1]\n" +
					"num_objects: 25\n" +
					"name_length: [400, 800, 1600]\n",
			))
			So(cfg.Pool, ShouldEqual, "rbd")
			So(cfg.Prefix, ShouldEqual, "lfnobj")
			So(cfg.Namespace, ShouldResemble, []string{"", "ns1"})
			So(cfg.NumObjects, ShouldEqual, 25)
			So(cfg.NameLength, ShouldResemble, []int{400, 800, 1600})
		})

		Convey("rectifying an empty config fills the documented defaults", func() {
			cfg := ParseLFNYaml([]byte("{}\n"))
			cfg.Rectify()
			So(cfg.Pool, ShouldEqual, "data")
			So(cfg.Namespace, ShouldResemble, []string{""})
			So(cfg.NumObjects, ShouldEqual, 10)
			So(cfg.NameLength, ShouldResemble, []int{400})
		})
	})
}
