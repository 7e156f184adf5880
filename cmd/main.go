package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sell_that_sheet/internal/controller"
	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
	"sell_that_sheet/internal/router"
	"sell_that_sheet/internal/service"
	"sell_that_sheet/internal/task"
	"sell_that_sheet/pkg/allegro"
	"sell_that_sheet/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Schema,
		deps.Controllers.Draft,
		deps.Controllers.Photoset,
		deps.Controllers.Set,
		deps.Controllers.Catalog,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Auction    repository.AuctionRepository
	AuctionSet repository.AuctionSetRepository
	Parameter  repository.ParameterRepository
	Link       repository.AuctionParameterRepository
	Catalog    repository.CategoryParameterRepository
	Photo      repository.PhotoRepository
	PhotoSet   repository.PhotoSetRepository
	User       repository.UserRepository
	Template   repository.DescriptionTemplateRepository
}

// Services 服务集合
type Services struct {
	Schema     *service.SchemaService
	Form       *service.FormService
	Drafts     *service.DraftStore
	Assembly   *service.AssemblyService
	Photoset   *service.PhotosetService
	Auth       *service.AuthService
	Set        *service.AuctionSetService
	Baselinker *service.BaselinkerService
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Schema   *controller.SchemaController
	Draft    *controller.DraftController
	Photoset *controller.PhotosetController
	Set      *controller.AuctionSetController
	Catalog  *controller.CatalogController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=sts password=sts dbname=sell_that_sheet port=5432 sslmode=disable")
	return database.InitDB(dsn, getEnv("GIN_MODE", "") != "release",
		// 拍卖
		&model.Auction{}, &model.AuctionSet{},
		// 参数
		&model.Parameter{}, &model.AuctionParameter{}, &model.CategoryParameter{},
		// 图集
		&model.Photo{}, &model.PhotoSet{},
		// 用户
		&model.User{}, &model.DescriptionTemplate{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Auction:    repository.NewAuctionRepository(db),
		AuctionSet: repository.NewAuctionSetRepository(db),
		Parameter:  repository.NewParameterRepository(db),
		Link:       repository.NewAuctionParameterRepository(db),
		Catalog:    repository.NewCategoryParameterRepository(db),
		Photo:      repository.NewPhotoRepository(db),
		PhotoSet:   repository.NewPhotoSetRepository(db),
		User:       repository.NewUserRepository(db),
		Template:   repository.NewDescriptionTemplateRepository(db),
	}

	// -------- 外部客户端 --------
	allegroClient := allegro.NewClient(
		getEnv("ALLEGRO_API_URL", ""),
		getEnv("ALLEGRO_API_TOKEN", ""),
	)

	// -------- 业务服务 --------
	services := &Services{
		Schema: service.NewSchemaService(allegroClient, repos.Catalog),
		Form:   service.NewFormService(nil),
		Drafts: service.NewDraftStore(),
		Assembly: service.NewAssemblyService(
			repos.Auction, repos.AuctionSet, repos.Parameter, repos.Link, repos.Catalog,
		),
		Photoset: service.NewPhotosetService(
			repos.Photo, repos.PhotoSet,
			getEnv("PHOTO_BASE_URL", "http://localhost:8080/photos"),
		),
		Auth: service.NewAuthService(repos.User),
		Set:  service.NewAuctionSetService(repos.AuctionSet, repos.Auction),
		Baselinker: service.NewBaselinkerService(
			getEnv("BASELINKER_API_URL", "https://api.baselinker.com"),
			getEnv("BASELINKER_API_TOKEN", ""),
			repos.Auction,
		),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Schema:   controller.NewSchemaController(services.Schema, services.Form, allegroClient),
		Draft:    controller.NewDraftController(services.Drafts, services.Assembly, services.Schema, services.Form),
		Photoset: controller.NewPhotosetController(services.Photoset),
		Set:      controller.NewAuctionSetController(services.Set),
		Catalog:  controller.NewCatalogController(repos.Catalog, repos.Template),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// Baselinker 推送
	pusherTask := task.NewPusherTask(deps.Repos.AuctionSet, deps.Services.Baselinker)
	pusherTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
