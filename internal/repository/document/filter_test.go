package document

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildListFilter(t *testing.T) {
	Convey("BuildListFilter", t, func() {
		Convey("非审核员（含登录用户）只能看到approved文档", func() {
			filter := BuildListFilter(ListOptions{})
			So(filter["status"], ShouldEqual, "approved")
			// 可见范围不含uploaded_by分支，自己的pending不进通用列表
			So(filter["$or"], ShouldBeNil)
			So(filter["uploaded_by"], ShouldBeNil)
		})

		Convey("审核员没有可见性限制", func() {
			filter := BuildListFilter(ListOptions{ViewerIsModerator: true})
			So(len(filter), ShouldEqual, 0)
		})

		Convey("显式筛选与可见性取交集", func() {
			// 匿名用户筛pending：status条件冲突，必须用$and合并而非覆盖
			filter := BuildListFilter(ListOptions{Status: "pending"})
			and, ok := filter["$and"].([]bson.M)
			So(ok, ShouldBeTrue)
			So(and[0]["status"], ShouldEqual, "pending")
			So(and[1]["status"], ShouldEqual, "approved")
		})

		Convey("审核员的显式筛选直接生效", func() {
			filter := BuildListFilter(ListOptions{
				Status:            "pending",
				CategoryID:        "c1",
				ViewerIsModerator: true,
			})
			So(filter["status"], ShouldEqual, "pending")
			So(filter["category_id"], ShouldEqual, "c1")
		})

		Convey("搜索条件占用$or时与可见性合并", func() {
			filter := BuildListFilter(ListOptions{Search: "go"})
			and, ok := filter["$and"].([]bson.M)
			So(ok, ShouldBeTrue)
			So(len(and), ShouldEqual, 2)
			So(and[1]["status"], ShouldEqual, "approved")
		})

		Convey("标签列表内部OR、整体与其他条件AND", func() {
			filter := BuildListFilter(ListOptions{
				Tags:              []string{"history", "rwanda"},
				Language:          "en",
				ViewerIsModerator: true,
			})
			and, ok := filter["$and"].([]bson.M)
			So(ok, ShouldBeTrue)
			So(len(and), ShouldEqual, 2)
			So(and[0]["language"], ShouldEqual, "en")

			anyTag, ok := and[1]["$or"].([]bson.M)
			So(ok, ShouldBeTrue)
			So(len(anyTag), ShouldEqual, 2)
		})

		Convey("分类slug和许可筛选", func() {
			filter := BuildListFilter(ListOptions{
				CategorySlug:      "education",
				License:           "cc-by",
				ViewerIsModerator: true,
			})
			So(filter["category_slug"], ShouldEqual, "education")
			So(filter["license"], ShouldEqual, "cc-by")
		})

		Convey("语言和上传者筛选", func() {
			filter := BuildListFilter(ListOptions{
				Language:          "fr",
				UploadedBy:        "u2",
				ViewerIsModerator: true,
			})
			So(filter["language"], ShouldEqual, "fr")
			So(filter["uploaded_by"], ShouldEqual, "u2")
		})
	})
}
