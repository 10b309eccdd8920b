package tests

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"isoko/internal/model/document"
	"isoko/internal/pkg/apperr"
	"isoko/internal/service"
)

// TestDocumentReview 审核流转
func TestDocumentReview(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档审核", t, func() {
		uploader := createTestUser(t, "review_uploader", false)
		moderator := createTestUser(t, "review_moderator", true)
		cat := createTestCategory(t, "Review Test Category")
		svc := testServices.DocumentService

		doc := uploadTestDocument(t, uploader, "Review Target", cat.ID)

		Convey("审核通过写入审核记录", func() {
			approved, err := svc.Approve(testCtx, moderator, doc.Slug)
			So(err, ShouldBeNil)
			So(approved.Status, ShouldEqual, document.StatusApproved)
			So(approved.ReviewedBy, ShouldEqual, moderator.ID)
			So(approved.ReviewedByName, ShouldEqual, moderator.Username)
			So(approved.ReviewedAt, ShouldNotBeNil)

			Convey("已通过的文档可以再被拒绝", func() {
				rejected, err := svc.Reject(testCtx, moderator, doc.Slug, "copyright issue")
				So(err, ShouldBeNil)
				So(rejected.Status, ShouldEqual, document.StatusRejected)
				So(rejected.RejectionReason, ShouldEqual, "copyright issue")

				Convey("再次通过时清除拒绝原因", func() {
					reapproved, err := svc.Approve(testCtx, moderator, doc.Slug)
					So(err, ShouldBeNil)
					So(reapproved.Status, ShouldEqual, document.StatusApproved)
					So(reapproved.RejectionReason, ShouldBeEmpty)
				})
			})
		})

		Convey("拒绝必须给出原因，失败时文档状态不变", func() {
			target := uploadTestDocument(t, uploader, "Reject Without Reason", cat.ID)

			_, err := svc.Reject(testCtx, moderator, target.Slug, "")
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)

			loaded, err := testServices.DocumentRepo.FindByID(testCtx, target.ID)
			So(err, ShouldBeNil)
			So(loaded.Status, ShouldEqual, document.StatusPending)
			So(loaded.ReviewedBy, ShouldBeEmpty)
		})

		Convey("待审核队列只包含pending文档", func() {
			pending := uploadTestDocument(t, uploader, "Still Pending", cat.ID)

			docs, _, err := svc.Pending(testCtx, 1, 100)
			So(err, ShouldBeNil)

			ids := make(map[string]bool)
			for _, d := range docs {
				So(d.Status, ShouldEqual, document.StatusPending)
				ids[d.ID] = true
			}
			So(ids[pending.ID], ShouldBeTrue)
		})
	})
}

// TestDocumentVisibility 可见性规则
func TestDocumentVisibility(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档可见性", t, func() {
		owner := createTestUser(t, "vis_owner", false)
		other := createTestUser(t, "vis_other", false)
		moderator := createTestUser(t, "vis_moderator", true)
		cat := createTestCategory(t, "Visibility Test Category")
		svc := testServices.DocumentService

		pendingDoc := uploadTestDocument(t, owner, "Visibility Pending", cat.ID)
		approvedDoc := uploadTestDocument(t, owner, "Visibility Approved", cat.ID)
		_, err := svc.Approve(testCtx, moderator, approvedDoc.Slug)
		So(err, ShouldBeNil)

		Convey("匿名只能看到已审核文档", func() {
			_, err := svc.Get(testCtx, nil, pendingDoc.Slug)
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindNotFound)

			doc, err := svc.Get(testCtx, nil, approvedDoc.Slug)
			So(err, ShouldBeNil)
			So(doc.ID, ShouldEqual, approvedDoc.ID)
		})

		Convey("其他用户看不到待审核文档（404而非403）", func() {
			_, err := svc.Get(testCtx, other, pendingDoc.Slug)
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindNotFound)
		})

		Convey("所有者和审核员可以看到待审核文档", func() {
			doc, err := svc.Get(testCtx, owner, pendingDoc.Slug)
			So(err, ShouldBeNil)
			So(doc.ID, ShouldEqual, pendingDoc.ID)

			doc, err = svc.Get(testCtx, moderator, pendingDoc.Slug)
			So(err, ShouldBeNil)
			So(doc.ID, ShouldEqual, pendingDoc.ID)
		})

		Convey("列表可见范围随身份变化", func() {
			listIDs := func(docs []*document.Document) map[string]bool {
				ids := make(map[string]bool)
				for _, d := range docs {
					ids[d.ID] = true
				}
				return ids
			}

			anonDocs, _, err := svc.List(testCtx, nil, service.ListInput{CategoryID: cat.ID, Page: 1, PageSize: 100})
			So(err, ShouldBeNil)
			anonIDs := listIDs(anonDocs)
			So(anonIDs[approvedDoc.ID], ShouldBeTrue)
			So(anonIDs[pendingDoc.ID], ShouldBeFalse)

			// 所有者在通用列表里同样只看到approved，
			// 自己的pending走my/documents和按slug直查
			ownerDocs, _, err := svc.List(testCtx, owner, service.ListInput{CategoryID: cat.ID, Page: 1, PageSize: 100})
			So(err, ShouldBeNil)
			ownerIDs := listIDs(ownerDocs)
			So(ownerIDs[approvedDoc.ID], ShouldBeTrue)
			So(ownerIDs[pendingDoc.ID], ShouldBeFalse)

			modDocs, _, err := svc.List(testCtx, moderator, service.ListInput{CategoryID: cat.ID, Page: 1, PageSize: 100})
			So(err, ShouldBeNil)
			modIDs := listIDs(modDocs)
			So(modIDs[pendingDoc.ID], ShouldBeTrue)
		})

		Convey("我的文档包含全部状态", func() {
			myDocs, _, err := svc.MyDocuments(testCtx, owner, 1, 100)
			So(err, ShouldBeNil)

			ids := make(map[string]bool)
			for _, d := range myDocs {
				So(d.UploadedBy, ShouldEqual, owner.ID)
				ids[d.ID] = true
			}
			So(ids[pendingDoc.ID], ShouldBeTrue)
			So(ids[approvedDoc.ID], ShouldBeTrue)
		})
	})
}
