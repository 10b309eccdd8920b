package slugutil

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMake(t *testing.T) {
	Convey("Make slug生成", t, func() {
		So(Make("Hello World"), ShouldEqual, "hello-world")
		So(Make("Rapport Annuel 2024"), ShouldEqual, "rapport-annuel-2024")
		So(Make("  Spaces  Everywhere  "), ShouldEqual, "spaces-everywhere")

		Convey("空标题兜底", func() {
			So(Make(""), ShouldEqual, "untitled")
			So(Make("!!!"), ShouldEqual, "untitled")
		})
	})
}

func TestWithSuffix(t *testing.T) {
	Convey("WithSuffix 数字后缀序列", t, func() {
		So(WithSuffix("report", 0), ShouldEqual, "report")
		So(WithSuffix("report", 1), ShouldEqual, "report-1")
		So(WithSuffix("report", 12), ShouldEqual, "report-12")
	})
}
