package tests

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"isoko/internal/model/document"
	"isoko/internal/pkg/apperr"
	"isoko/internal/service"
)

// TestDocumentUpload 文档上传与校验
func TestDocumentUpload(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档上传", t, func() {
		svc := testServices.DocumentService
		uploader := createTestUser(t, "doc_uploader", false)
		cat := createTestCategory(t, "Upload Test Category")

		Convey("上传成功后进入pending状态", func() {
			doc := uploadTestDocument(t, uploader, "My First Document", cat.ID)
			So(doc.Status, ShouldEqual, document.StatusPending)
			So(doc.Slug, ShouldEqual, "my-first-document")
			So(doc.UploadedBy, ShouldEqual, uploader.ID)
			So(doc.UploadedByName, ShouldEqual, uploader.Username)
			So(doc.CategoryName, ShouldEqual, cat.Name)
			So(doc.ReviewedBy, ShouldBeEmpty)

			Convey("文件已写入存储", func() {
				exists, err := testStorage.Exists(testCtx, doc.StorageKey)
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			})
		})

		Convey("非PDF文件被拒绝", func() {
			content := []byte("plain text")
			_, err := svc.Create(testCtx, uploader, service.CreateDocumentInput{
				Title:       "Not A PDF",
				CategoryID:  cat.ID,
				Language:    "en",
				License:     "cc-by",
				File:        bytes.NewReader(content),
				FileSize:    int64(len(content)),
				ContentType: "text/plain",
			})
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
		})

		Convey("超过大小限制的文件被拒绝", func() {
			content := fakePDF(2 << 20) // 2MB，超过测试配置的1MB
			_, err := svc.Create(testCtx, uploader, service.CreateDocumentInput{
				Title:       "Too Big",
				CategoryID:  cat.ID,
				Language:    "en",
				License:     "cc-by",
				File:        bytes.NewReader(content),
				FileSize:    int64(len(content)),
				ContentType: "application/pdf",
			})
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
		})

		Convey("不存在的分类被拒绝", func() {
			content := fakePDF(128)
			_, err := svc.Create(testCtx, uploader, service.CreateDocumentInput{
				Title:       "Orphan Category",
				CategoryID:  "no-such-category",
				Language:    "en",
				License:     "cc-by",
				File:        bytes.NewReader(content),
				FileSize:    int64(len(content)),
				ContentType: "application/pdf",
			})
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindValidation)
		})

		Convey("被封禁用户不能上传", func() {
			banned := createTestUser(t, "doc_banned_uploader", false)
			_, err := testServices.UserService.Ban(testCtx, banned.ID, "abuse")
			So(err, ShouldBeNil)

			bannedUser, err := testServices.UserRepo.FindByID(testCtx, banned.ID)
			So(err, ShouldBeNil)

			content := fakePDF(128)
			_, err = svc.Create(testCtx, bannedUser, service.CreateDocumentInput{
				Title:       "Banned Upload",
				CategoryID:  cat.ID,
				Language:    "en",
				License:     "cc-by",
				File:        bytes.NewReader(content),
				FileSize:    int64(len(content)),
				ContentType: "application/pdf",
			})
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindAuthorization)
		})
	})
}

// TestDocumentSlugAllocation slug唯一性分配
func TestDocumentSlugAllocation(t *testing.T) {
	skipIfNoMongo(t)

	Convey("slug分配", t, func() {
		uploader := createTestUser(t, "slug_uploader", false)
		cat := createTestCategory(t, "Slug Test Category")

		Convey("同名文档依次获得递增后缀", func() {
			first := uploadTestDocument(t, uploader, "Duplicate Title", cat.ID)
			second := uploadTestDocument(t, uploader, "Duplicate Title", cat.ID)
			third := uploadTestDocument(t, uploader, "Duplicate Title", cat.ID)

			So(first.Slug, ShouldEqual, "duplicate-title")
			So(second.Slug, ShouldEqual, "duplicate-title-1")
			So(third.Slug, ShouldEqual, "duplicate-title-2")
		})

		Convey("并发上传同名文档得到互不相同的slug", func() {
			const n = 8
			var wg sync.WaitGroup
			slugs := make([]string, n)
			errs := make([]error, n)

			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					content := fakePDF(128)
					doc, err := testServices.DocumentService.Create(testCtx, uploader, service.CreateDocumentInput{
						Title:       "Concurrent Title",
						CategoryID:  cat.ID,
						Language:    "en",
						License:     "cc-by",
						File:        bytes.NewReader(content),
						FileSize:    int64(len(content)),
						ContentType: "application/pdf",
					})
					errs[i] = err
					if err == nil {
						slugs[i] = doc.Slug
					}
				}(i)
			}
			wg.Wait()

			seen := make(map[string]bool)
			for i := 0; i < n; i++ {
				So(errs[i], ShouldBeNil)
				So(seen[slugs[i]], ShouldBeFalse)
				seen[slugs[i]] = true
			}
		})
	})
}

// TestDocumentListFilters 列表筛选条件
func TestDocumentListFilters(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档列表筛选", t, func() {
		uploader := createTestUser(t, "filter_uploader", false)
		moderator := createTestUser(t, "filter_moderator", true)
		cat := createTestCategory(t, "Filter Test Category")
		svc := testServices.DocumentService

		upload := func(title, tags, license string) {
			content := fakePDF(128)
			doc, err := svc.Create(testCtx, uploader, service.CreateDocumentInput{
				Title:       title,
				CategoryID:  cat.ID,
				Language:    "en",
				Tags:        tags,
				License:     license,
				File:        bytes.NewReader(content),
				FileSize:    int64(len(content)),
				ContentType: "application/pdf",
			})
			So(err, ShouldBeNil)
			_, err = svc.Approve(testCtx, moderator, doc.Slug)
			So(err, ShouldBeNil)
		}

		upload("Filter History Paper", "history, rwanda", "cc-by")
		upload("Filter Science Paper", "science", "cc0")

		Convey("按标签筛选（任一命中）", func() {
			docs, _, err := svc.List(testCtx, nil, service.ListInput{
				CategorySlug: cat.Slug,
				Tags:         []string{"rwanda", "missing"},
				Page:         1, PageSize: 100,
			})
			So(err, ShouldBeNil)
			So(len(docs), ShouldEqual, 1)
			So(docs[0].Title, ShouldEqual, "Filter History Paper")
		})

		Convey("按许可筛选", func() {
			docs, _, err := svc.List(testCtx, nil, service.ListInput{
				CategorySlug: cat.Slug,
				License:      "cc0",
				Page:         1, PageSize: 100,
			})
			So(err, ShouldBeNil)
			So(len(docs), ShouldEqual, 1)
			So(docs[0].Title, ShouldEqual, "Filter Science Paper")
		})

		Convey("搜索覆盖标签字段", func() {
			docs, _, err := svc.List(testCtx, nil, service.ListInput{
				CategorySlug: cat.Slug,
				Search:       "rwanda",
				Page:         1, PageSize: 100,
			})
			So(err, ShouldBeNil)
			So(len(docs), ShouldEqual, 1)
		})

		Convey("按分类slug筛选", func() {
			docs, _, err := svc.List(testCtx, nil, service.ListInput{
				CategorySlug: cat.Slug,
				Page:         1, PageSize: 100,
			})
			So(err, ShouldBeNil)
			So(len(docs), ShouldEqual, 2)
		})
	})
}

// TestDocumentCounters 并发计数不丢
func TestDocumentCounters(t *testing.T) {
	skipIfNoMongo(t)

	Convey("浏览/下载计数", t, func() {
		uploader := createTestUser(t, "counter_uploader", false)
		cat := createTestCategory(t, "Counter Test Category")
		doc := uploadTestDocument(t, uploader, "Counter Document", cat.ID)

		Convey("并发+1累计不丢失", func() {
			const n = 20
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = testServices.DocumentRepo.IncViewCount(testCtx, doc.ID)
					_ = testServices.DocumentRepo.IncDownloadCount(testCtx, doc.ID)
				}()
			}
			wg.Wait()

			loaded, err := testServices.DocumentRepo.FindByID(testCtx, doc.ID)
			So(err, ShouldBeNil)
			So(loaded.ViewCount, ShouldEqual, int64(n))
			So(loaded.DownloadCount, ShouldEqual, int64(n))

			Convey("计数更新不触碰updated_at", func() {
				So(loaded.UpdatedAt.Unix(), ShouldEqual, doc.UpdatedAt.Unix())
			})
		})
	})
}

// TestDocumentDownload 下载流与计数
func TestDocumentDownload(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档下载", t, func() {
		uploader := createTestUser(t, "download_uploader", false)
		moderator := createTestUser(t, "download_moderator", true)
		cat := createTestCategory(t, "Download Test Category")
		doc := uploadTestDocument(t, uploader, "Download Document", cat.ID)

		_, err := testServices.DocumentService.Approve(testCtx, moderator, doc.Slug)
		So(err, ShouldBeNil)

		Convey("匿名可以下载已审核文档", func() {
			loaded, body, err := testServices.DocumentService.Download(testCtx, nil, doc.Slug)
			So(err, ShouldBeNil)
			defer body.Close()

			buf := make([]byte, 8)
			n, err := body.Read(buf)
			So(err, ShouldBeNil)
			So(string(buf[:n]), ShouldStartWith, "%PDF")
			So(loaded.ID, ShouldEqual, doc.ID)

			Convey("下载计数累加", func() {
				reloaded, err := testServices.DocumentRepo.FindByID(testCtx, doc.ID)
				So(err, ShouldBeNil)
				So(reloaded.DownloadCount, ShouldEqual, int64(1))
			})
		})
	})
}

// TestDocumentUpdateAndDelete 元数据更新与删除权限
func TestDocumentUpdateAndDelete(t *testing.T) {
	skipIfNoMongo(t)

	Convey("文档更新与删除", t, func() {
		owner := createTestUser(t, "upd_owner", false)
		other := createTestUser(t, "upd_other", false)
		moderator := createTestUser(t, "upd_moderator", true)
		cat := createTestCategory(t, "Update Test Category")

		Convey("所有者可以更新元数据，slug保持不变", func() {
			doc := uploadTestDocument(t, owner, "Original Title", cat.ID)

			newTitle := "Renamed Title"
			newDesc := "updated description"
			updated, err := testServices.DocumentService.Update(testCtx, owner, doc.Slug, service.UpdateDocumentInput{
				Title:       &newTitle,
				Description: &newDesc,
			})
			So(err, ShouldBeNil)
			So(updated.Title, ShouldEqual, "Renamed Title")
			So(updated.Description, ShouldEqual, "updated description")
			So(updated.Slug, ShouldEqual, doc.Slug)
			// 分类在上传时确定，更新接口不开放分类字段
			So(updated.CategoryID, ShouldEqual, cat.ID)
			So(updated.CategorySlug, ShouldEqual, doc.CategorySlug)
		})

		Convey("非所有者不能更新", func() {
			doc := uploadTestDocument(t, owner, "Protected Title", cat.ID)
			_, err := testServices.DocumentService.Approve(testCtx, moderator, doc.Slug)
			So(err, ShouldBeNil)

			desc := "hijack"
			_, err = testServices.DocumentService.Update(testCtx, other, doc.Slug, service.UpdateDocumentInput{
				Description: &desc,
			})
			So(err, ShouldNotBeNil)
			So(apperr.KindOf(err), ShouldEqual, apperr.KindAuthorization)
		})

		Convey("删除时清理存储文件", func() {
			doc := uploadTestDocument(t, owner, fmt.Sprintf("Delete Me %d", len(cat.ID)), cat.ID)
			storageKey := doc.StorageKey

			So(testServices.DocumentService.Delete(testCtx, owner, doc.Slug), ShouldBeNil)

			exists, err := testStorage.Exists(testCtx, storageKey)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			_, err = testServices.DocumentRepo.FindBySlug(testCtx, doc.Slug)
			So(err, ShouldNotBeNil)
		})
	})
}
