package policy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"isoko/internal/model/auth"
	"isoko/internal/model/document"
)

func TestIsModerator(t *testing.T) {
	Convey("IsModerator", t, func() {
		Convey("匿名用户不是审核员", func() {
			So(IsModerator(nil), ShouldBeFalse)
		})

		Convey("普通用户不是审核员", func() {
			So(IsModerator(&auth.User{ID: "u1"}), ShouldBeFalse)
		})

		Convey("staff是审核员", func() {
			So(IsModerator(&auth.User{ID: "u1", IsStaff: true}), ShouldBeTrue)
		})

		Convey("moderators组成员是审核员", func() {
			u := &auth.User{ID: "u1", Groups: []string{"readers", auth.ModeratorsGroup}}
			So(IsModerator(u), ShouldBeTrue)
		})

		Convey("其他组成员不是审核员", func() {
			u := &auth.User{ID: "u1", Groups: []string{"readers"}}
			So(IsModerator(u), ShouldBeFalse)
		})
	})
}

func TestCanModify(t *testing.T) {
	Convey("CanModify", t, func() {
		owner := &auth.User{ID: "owner"}
		other := &auth.User{ID: "other"}
		mod := &auth.User{ID: "mod", IsStaff: true}

		Convey("所有者可以修改", func() {
			So(CanModify(owner, "owner"), ShouldBeTrue)
		})

		Convey("审核员可以修改他人资源", func() {
			So(CanModify(mod, "owner"), ShouldBeTrue)
		})

		Convey("非所有者不能修改", func() {
			So(CanModify(other, "owner"), ShouldBeFalse)
		})

		Convey("匿名用户不能修改", func() {
			So(CanModify(nil, "owner"), ShouldBeFalse)
		})
	})
}

func TestCanViewDocument(t *testing.T) {
	Convey("CanViewDocument", t, func() {
		approved := &document.Document{UploadedBy: "owner", Status: document.StatusApproved}
		pending := &document.Document{UploadedBy: "owner", Status: document.StatusPending}
		rejected := &document.Document{UploadedBy: "owner", Status: document.StatusRejected}

		Convey("已审核通过的文档对匿名可见", func() {
			So(CanViewDocument(nil, approved), ShouldBeTrue)
		})

		Convey("待审核文档对匿名不可见", func() {
			So(CanViewDocument(nil, pending), ShouldBeFalse)
		})

		Convey("待审核文档对所有者可见", func() {
			So(CanViewDocument(&auth.User{ID: "owner"}, pending), ShouldBeTrue)
		})

		Convey("被拒绝文档对审核员可见", func() {
			So(CanViewDocument(&auth.User{ID: "mod", IsStaff: true}, rejected), ShouldBeTrue)
		})

		Convey("待审核文档对其他用户不可见", func() {
			So(CanViewDocument(&auth.User{ID: "other"}, pending), ShouldBeFalse)
		})
	})
}

func TestCanUploadAndBan(t *testing.T) {
	Convey("CanUpload", t, func() {
		Convey("正常用户可以上传", func() {
			So(CanUpload(&auth.User{ID: "u1"}), ShouldBeTrue)
		})

		Convey("被封禁用户不能上传", func() {
			So(CanUpload(&auth.User{ID: "u1", IsBanned: true}), ShouldBeFalse)
		})

		Convey("匿名用户不能上传", func() {
			So(CanUpload(nil), ShouldBeFalse)
		})
	})

	Convey("CanBan", t, func() {
		Convey("普通用户可被封禁", func() {
			So(CanBan(&auth.User{ID: "u1"}), ShouldBeTrue)
		})

		Convey("staff不可被封禁", func() {
			So(CanBan(&auth.User{ID: "u1", IsStaff: true}), ShouldBeFalse)
		})

		Convey("superuser不可被封禁", func() {
			So(CanBan(&auth.User{ID: "u1", IsSuperuser: true}), ShouldBeFalse)
		})
	})
}
