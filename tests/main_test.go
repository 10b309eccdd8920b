// Package tests 集成测试
//
// 运行集成测试：
//
//	MONGO_URI=mongodb://localhost:27017 go test ./tests -v
//
// 说明：
//   - MONGO_URI: MongoDB 连接地址（默认: mongodb://localhost:27017）
//   - MongoDB 不可达时所有集成测试自动跳过
//   - KEEP_TEST_DATA: 设置为 "true" 时，测试完成后保留数据库数据和存储文件
//   - 测试使用本地文件系统存储（临时目录）
package tests

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"isoko/internal/config"
	"isoko/internal/model/auth"
	"isoko/internal/model/category"
	"isoko/internal/model/document"
	"isoko/internal/pkg/id"
	"isoko/internal/pkg/mongodb"
	"isoko/internal/pkg/password"
	"isoko/internal/pkg/storage"
	"isoko/internal/pkg/storagefactory"
	authRepo "isoko/internal/repository/auth"
	categoryRepo "isoko/internal/repository/category"
	documentRepo "isoko/internal/repository/document"
	reportRepo "isoko/internal/repository/report"
	"isoko/internal/service"
)

// 包级别的测试环境变量（在 TestMain 中初始化）
var (
	testCtx         context.Context
	testDB          *mongo.Database
	testStorage     storage.Storage
	testStorageDir  string
	testServices    *TestServices
	testMongoClient *mongo.Client
	mongoAvailable  bool
)

// testCollections 测试用到的全部集合
var testCollections = []string{"users", "refresh_tokens", "categories", "documents", "reports"}

// TestMain 测试主函数，在所有测试运行前初始化和运行后清理
func TestMain(m *testing.M) {
	testCtx = context.Background()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(testCtx, 3*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err == nil {
		err = client.Ping(ctx, readpref.Primary())
	}
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "MongoDB 不可达 (%v)，跳过全部集成测试\n", err)
		os.Exit(m.Run())
	}

	mongoAvailable = true
	testMongoClient = client
	testDB = client.Database("isoko_test")

	// 清空上次残留的数据，再建索引（slug/举报唯一性依赖索引）
	dropTestCollections()
	if err := mongodb.EnsureIndexes(testDB); err != nil {
		panic(fmt.Sprintf("Failed to ensure indexes: %v", err))
	}

	// 初始化存储（本地文件系统，临时目录）
	testStorageDir, err = os.MkdirTemp("", "isoko_test_storage_*")
	if err != nil {
		panic(fmt.Sprintf("Failed to create storage dir: %v", err))
	}
	storageCfg := &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: testStorageDir},
	}
	testStorage, err = storagefactory.NewStorage(storageCfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to create storage: %v", err))
	}

	testServices = setupTestServices(testDB, testStorage)

	code := m.Run()

	if os.Getenv("KEEP_TEST_DATA") != "true" {
		dropTestCollections()
		_ = os.RemoveAll(testStorageDir)
	} else {
		fmt.Fprintf(os.Stderr, "保留测试数据：数据库=%s, 存储目录=%s\n", testDB.Name(), testStorageDir)
	}
	_ = testMongoClient.Disconnect(testCtx)

	os.Exit(code)
}

func dropTestCollections() {
	for _, name := range testCollections {
		_ = testDB.Collection(name).Drop(testCtx)
	}
}

// skipIfNoMongo MongoDB 不可达时跳过当前测试
func skipIfNoMongo(t *testing.T) {
	if !mongoAvailable {
		t.Skip("MongoDB not available")
	}
}

// TestServices 测试服务集合
// 包含所有测试中需要的仓库和服务
type TestServices struct {
	// 仓库
	UserRepo     *authRepo.UserRepo
	CategoryRepo *categoryRepo.CategoryRepo
	DocumentRepo *documentRepo.DocumentRepo
	ReportRepo   *reportRepo.ReportRepo

	// 服务
	AuthService     *service.AuthService
	UserService     *service.UserService
	CategoryService *service.CategoryService
	DocumentService *service.DocumentService
	ReportService   *service.ReportService

	// 存储
	Storage storage.Storage
}

// setupTestServices 初始化测试服务（仓库和服务）
func setupTestServices(db *mongo.Database, testStorage storage.Storage) *TestServices {
	userRepo := authRepo.NewUserRepo(db)
	refreshTokenRepo := authRepo.NewRefreshTokenRepo(db)
	catRepo := categoryRepo.NewCategoryRepo(db)
	docRepo := documentRepo.NewDocumentRepo(db)
	rptRepo := reportRepo.NewReportRepo(db)

	uploadCfg := &config.UploadConfig{
		MaxSize:      1 << 20, // 1MB，方便测试超限
		AllowedTypes: []string{"application/pdf"},
	}

	return &TestServices{
		UserRepo:        userRepo,
		CategoryRepo:    catRepo,
		DocumentRepo:    docRepo,
		ReportRepo:      rptRepo,
		AuthService:     service.NewAuthService(userRepo, refreshTokenRepo, "test-secret", time.Hour, 24*time.Hour),
		UserService:     service.NewUserService(userRepo),
		CategoryService: service.NewCategoryService(catRepo, docRepo),
		DocumentService: service.NewDocumentService(docRepo, catRepo, rptRepo, testStorage, uploadCfg),
		ReportService:   service.NewReportService(rptRepo, docRepo),
		Storage:         testStorage,
	}
}

// createTestUser 直接入库创建测试用户
func createTestUser(t *testing.T, username string, staff bool) *auth.User {
	t.Helper()

	hashed, err := password.Hash("testpass123")
	if err != nil {
		t.Fatalf("加密密码失败: %v", err)
	}

	user := &auth.User{
		ID:       id.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: hashed,
		IsStaff:  staff,
	}
	if err := testServices.UserRepo.Create(testCtx, user); err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// createTestCategory 直接入库创建测试分类
func createTestCategory(t *testing.T, name string) *category.Category {
	t.Helper()

	c, err := testServices.CategoryService.Create(testCtx, service.CategoryInput{Name: name})
	if err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	return c
}

// fakePDF 构造测试用的PDF内容
func fakePDF(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte("%PDF-1.4 test document"))
	return data
}

// uploadTestDocument 走完整上传流程创建测试文档
func uploadTestDocument(t *testing.T, user *auth.User, title, categoryID string) *document.Document {
	t.Helper()

	content := fakePDF(256)
	doc, err := testServices.DocumentService.Create(testCtx, user, service.CreateDocumentInput{
		Title:       title,
		Description: "integration test document",
		CategoryID:  categoryID,
		Language:    "en",
		License:     "cc-by",
		File:        bytes.NewReader(content),
		FileSize:    int64(len(content)),
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("上传测试文档失败: %v", err)
	}
	return doc
}
