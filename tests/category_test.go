package tests

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"isoko/internal/model/document"
	"isoko/internal/pkg/apperr"
	"isoko/internal/service"
)

// TestCategoryLifecycle 分类创建/更新/删除
func TestCategoryLifecycle(t *testing.T) {
	skipIfNoMongo(t)

	Convey("分类生命周期", t, func() {
		svc := testServices.CategoryService

		Convey("创建时由name生成slug", func() {
			c, err := svc.Create(testCtx, service.CategoryInput{
				Name:        "Science & Research",
				Description: "scientific papers",
				Order:       3,
			})
			So(err, ShouldBeNil)
			So(c.Slug, ShouldEqual, "science-research")

			Convey("重名分类被拒绝", func() {
				_, err := svc.Create(testCtx, service.CategoryInput{Name: "Science & Research"})
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
			})

			Convey("空分类可以删除", func() {
				So(svc.Delete(testCtx, c.Slug), ShouldBeNil)

				_, err := svc.GetBySlug(testCtx, c.Slug)
				So(err, ShouldNotBeNil)
				So(apperr.KindOf(err), ShouldEqual, apperr.KindNotFound)
			})
		})

		Convey("分类下有文档时拒绝删除", func() {
			uploader := createTestUser(t, "cat_uploader", false)
			c := createTestCategory(t, "Protected Category")
			uploadTestDocument(t, uploader, "Category Keeper", c.ID)

			err := svc.Delete(testCtx, c.Slug)
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindConflict)

			// 分类仍然存在
			_, err = svc.GetBySlug(testCtx, c.Slug)
			So(err, ShouldBeNil)
		})

		Convey("document_count只统计已审核文档", func() {
			uploader := createTestUser(t, "cat_count_uploader", false)
			moderator := createTestUser(t, "cat_count_moderator", true)
			c := createTestCategory(t, "Counting Category")

			uploadTestDocument(t, uploader, "Count Pending", c.ID)
			approved := uploadTestDocument(t, uploader, "Count Approved", c.ID)
			_, err := testServices.DocumentService.Approve(testCtx, moderator, approved.Slug)
			So(err, ShouldBeNil)

			result, err := svc.GetBySlug(testCtx, c.Slug)
			So(err, ShouldBeNil)
			So(result.DocumentCount, ShouldEqual, int64(1))
		})

		Convey("改名后slug不变，同步文档上的冗余名称", func() {
			uploader := createTestUser(t, "cat_rename_uploader", false)
			c := createTestCategory(t, "Old Category Name")
			doc := uploadTestDocument(t, uploader, "Denorm Document", c.ID)
			So(doc.CategoryName, ShouldEqual, "Old Category Name")

			updated, err := svc.Update(testCtx, c.Slug, service.CategoryInput{Name: "New Category Name"})
			So(err, ShouldBeNil)
			So(updated.Name, ShouldEqual, "New Category Name")
			// slug创建时生成一次，改名不会重新生成
			So(updated.Slug, ShouldEqual, "old-category-name")

			// 旧slug依然可以访问
			got, err := svc.GetBySlug(testCtx, "old-category-name")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "New Category Name")

			reloaded, err := testServices.DocumentRepo.FindByID(testCtx, doc.ID)
			So(err, ShouldBeNil)
			So(reloaded.CategoryName, ShouldEqual, "New Category Name")
			So(reloaded.CategorySlug, ShouldEqual, "old-category-name")
			So(reloaded.Status, ShouldEqual, document.StatusPending)
		})
	})
}
