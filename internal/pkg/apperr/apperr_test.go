package apperr

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKindOf(t *testing.T) {
	Convey("KindOf 错误种类提取", t, func() {
		Convey("业务错误返回自身的Kind", func() {
			So(KindOf(Validation("参数错误")), ShouldEqual, KindValidation)
			So(KindOf(Authorization("权限不足")), ShouldEqual, KindAuthorization)
			So(KindOf(Conflict("唯一约束冲突")), ShouldEqual, KindConflict)
		})

		Convey("包装后的业务错误仍能识别", func() {
			inner := NotFound("文档不存在")
			wrapped := fmt.Errorf("get document: %w", inner)
			So(KindOf(wrapped), ShouldEqual, KindNotFound)
			So(IsKind(wrapped, KindNotFound), ShouldBeTrue)
		})

		Convey("普通错误视为internal", func() {
			So(KindOf(errors.New("boom")), ShouldEqual, KindInternal)
		})
	})
}

func TestErrorUnwrap(t *testing.T) {
	Convey("Error 保留底层错误", t, func() {
		cause := errors.New("duplicate key")
		err := Wrap(KindConflict, "slug已存在", cause)

		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "slug已存在")
		So(err.Error(), ShouldContainSubstring, "duplicate key")
	})
}
