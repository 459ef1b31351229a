// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qcmeta-go/internal/config"
	"qcmeta-go/internal/handler"
	"qcmeta-go/internal/middleware"
	"qcmeta-go/internal/model"
	"qcmeta-go/internal/pipeline"
	"qcmeta-go/internal/repository"
	"qcmeta-go/internal/service"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/es"
	"qcmeta-go/pkg/kafka"
	"qcmeta-go/pkg/log"
	"qcmeta-go/pkg/storage"
	"qcmeta-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、对象存储、搜索与消息队列
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	familyRepo := repository.NewCatalogRepository[model.MethodFamily](database.DB)
	spinStateRepo := repository.NewCatalogRepository[model.SpinState](database.DB)
	stateRepo := repository.NewCatalogRepository[model.ElectronicState](database.DB)
	moleculeRepo := repository.NewCatalogRepository[model.Molecule](database.DB)
	baseMethodRepo := repository.NewBaseMethodRepository(database.DB)
	esmfRepo := repository.NewCatalogRepository[model.ElectronicStateMethodFamilySimple](database.DB)
	ssesmfRepo := repository.NewCatalogRepository[model.SpinStateElectronicStateMethodFamilySimple](database.DB)
	fullMethodRepo := repository.NewCatalogRepository[model.FullMethodSimple](database.DB)
	experimentRepo := repository.NewExperimentRepository(database.DB)
	attachmentRepo := repository.NewAttachmentRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	hydrator := service.NewHydrator(
		familyRepo, spinStateRepo, stateRepo, moleculeRepo,
		baseMethodRepo, esmfRepo, ssesmfRepo, fullMethodRepo, experimentRepo,
	)
	publisher := service.NewKafkaIndexPublisher()
	eventHub := service.NewEventHub()
	go eventHub.Run()

	userService := service.NewUserService(userRepo, jwtManager)
	methodService := service.NewMethodService(familyRepo, baseMethodRepo, fullMethodRepo, ssesmfRepo, hydrator, publisher, eventHub)
	stateService := service.NewStateService(spinStateRepo, stateRepo, familyRepo, esmfRepo, ssesmfRepo, hydrator, publisher, eventHub)
	moleculeService := service.NewMoleculeService(moleculeRepo, publisher, eventHub)
	experimentService := service.NewExperimentService(
		experimentRepo, moleculeRepo, fullMethodRepo, attachmentRepo,
		hydrator, publisher, eventHub, cfg.MinIO.BucketName,
	)
	searchService := service.NewSearchService(es.ESClient, cfg.Elasticsearch.IndexName)
	adminService := service.NewAdminService(userRepo, hydrator, publisher)

	// 6. 初始化索引任务处理管道 (Processor)
	processor := pipeline.NewProcessor(
		cfg.Elasticsearch,
		familyRepo, spinStateRepo, stateRepo, moleculeRepo,
		baseMethodRepo, esmfRepo, ssesmfRepo, fullMethodRepo, experimentRepo,
	)

	// 7. 启动后台 Kafka 消费者，停机时通过 context 通知其退出
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go kafka.StartConsumer(consumerCtx, cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	authRequired := middleware.AuthMiddleware(jwtManager, userService)
	adminRequired := middleware.AdminAuthMiddleware()

	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(authRequired)
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// 目录实体路由。读操作对所有登录用户开放，写操作仅限管理员。
		methodHandler := handler.NewMethodHandler(methodService)
		methodFamilies := apiV1.Group("/method-families")
		methodFamilies.Use(authRequired)
		{
			methodFamilies.GET("", methodHandler.ListMethodFamilies)
			methodFamilies.GET("/records", methodHandler.MethodFamilyRecords)
			methodFamilies.GET("/:id", methodHandler.GetMethodFamily)
			methodFamilies.POST("", adminRequired, methodHandler.CreateMethodFamily)
			methodFamilies.PUT("/:id", adminRequired, methodHandler.UpdateMethodFamily)
			methodFamilies.POST("/:id/archive", adminRequired, methodHandler.ArchiveMethodFamily)
			methodFamilies.POST("/:id/restore", adminRequired, methodHandler.RestoreMethodFamily)
		}

		baseMethods := apiV1.Group("/base-methods")
		baseMethods.Use(authRequired)
		{
			baseMethods.GET("", methodHandler.ListBaseMethods)
			baseMethods.GET("/records", methodHandler.BaseMethodRecords)
			baseMethods.GET("/:id", methodHandler.GetBaseMethod)
			baseMethods.POST("", adminRequired, methodHandler.CreateBaseMethod)
			baseMethods.PUT("/:id", adminRequired, methodHandler.UpdateBaseMethod)
			baseMethods.POST("/:id/archive", adminRequired, methodHandler.ArchiveBaseMethod)
			baseMethods.POST("/:id/restore", adminRequired, methodHandler.RestoreBaseMethod)
		}

		fullMethods := apiV1.Group("/full-methods")
		fullMethods.Use(authRequired)
		{
			fullMethods.GET("", methodHandler.ListFullMethods)
			fullMethods.GET("/records", methodHandler.FullMethodRecords)
			fullMethods.GET("/:id", methodHandler.GetFullMethod)
			fullMethods.POST("", adminRequired, methodHandler.CreateFullMethod)
			fullMethods.PUT("/:id", adminRequired, methodHandler.UpdateFullMethod)
			fullMethods.POST("/:id/archive", adminRequired, methodHandler.ArchiveFullMethod)
			fullMethods.POST("/:id/restore", adminRequired, methodHandler.RestoreFullMethod)
		}

		stateHandler := handler.NewStateHandler(stateService)
		spinStates := apiV1.Group("/spin-states")
		spinStates.Use(authRequired)
		{
			spinStates.GET("", stateHandler.ListSpinStates)
			spinStates.GET("/records", stateHandler.SpinStateRecords)
			spinStates.GET("/:id", stateHandler.GetSpinState)
			spinStates.POST("", adminRequired, stateHandler.CreateSpinState)
			spinStates.PUT("/:id", adminRequired, stateHandler.UpdateSpinState)
			spinStates.POST("/:id/archive", adminRequired, stateHandler.ArchiveSpinState)
			spinStates.POST("/:id/restore", adminRequired, stateHandler.RestoreSpinState)
		}

		electronicStates := apiV1.Group("/electronic-states")
		electronicStates.Use(authRequired)
		{
			electronicStates.GET("", stateHandler.ListElectronicStates)
			electronicStates.GET("/records", stateHandler.ElectronicStateRecords)
			electronicStates.GET("/:id", stateHandler.GetElectronicState)
			electronicStates.POST("", adminRequired, stateHandler.CreateElectronicState)
			electronicStates.PUT("/:id", adminRequired, stateHandler.UpdateElectronicState)
			electronicStates.POST("/:id/archive", adminRequired, stateHandler.ArchiveElectronicState)
			electronicStates.POST("/:id/restore", adminRequired, stateHandler.RestoreElectronicState)
		}

		esmfGroup := apiV1.Group("/electronic-state-method-families")
		esmfGroup.Use(authRequired)
		{
			esmfGroup.GET("", stateHandler.ListElectronicStateMethodFamilies)
			esmfGroup.GET("/records", stateHandler.ElectronicStateMethodFamilyRecords)
			esmfGroup.GET("/:id", stateHandler.GetElectronicStateMethodFamily)
			esmfGroup.POST("", adminRequired, stateHandler.CreateElectronicStateMethodFamily)
			esmfGroup.PUT("/:id", adminRequired, stateHandler.UpdateElectronicStateMethodFamily)
			esmfGroup.POST("/:id/archive", adminRequired, stateHandler.ArchiveElectronicStateMethodFamily)
			esmfGroup.POST("/:id/restore", adminRequired, stateHandler.RestoreElectronicStateMethodFamily)
		}

		ssesmfGroup := apiV1.Group("/spin-state-electronic-state-method-families")
		ssesmfGroup.Use(authRequired)
		{
			ssesmfGroup.GET("", stateHandler.ListSpinStateElectronicStateMethodFamilies)
			ssesmfGroup.GET("/records", stateHandler.SpinStateElectronicStateMethodFamilyRecords)
			ssesmfGroup.GET("/:id", stateHandler.GetSpinStateElectronicStateMethodFamily)
			ssesmfGroup.POST("", adminRequired, stateHandler.CreateSpinStateElectronicStateMethodFamily)
			ssesmfGroup.PUT("/:id", adminRequired, stateHandler.UpdateSpinStateElectronicStateMethodFamily)
			ssesmfGroup.POST("/:id/archive", adminRequired, stateHandler.ArchiveSpinStateElectronicStateMethodFamily)
			ssesmfGroup.POST("/:id/restore", adminRequired, stateHandler.RestoreSpinStateElectronicStateMethodFamily)
		}

		moleculeHandler := handler.NewMoleculeHandler(moleculeService)
		molecules := apiV1.Group("/molecules")
		molecules.Use(authRequired)
		{
			molecules.GET("", moleculeHandler.List)
			molecules.GET("/records", moleculeHandler.Records)
			molecules.GET("/:id", moleculeHandler.Get)
			molecules.POST("", adminRequired, moleculeHandler.Create)
			molecules.PUT("/:id", adminRequired, moleculeHandler.Update)
			molecules.POST("/:id/archive", adminRequired, moleculeHandler.Archive)
			molecules.POST("/:id/restore", adminRequired, moleculeHandler.Restore)
		}

		experimentHandler := handler.NewExperimentHandler(experimentService)
		experiments := apiV1.Group("/experiments")
		experiments.Use(authRequired)
		{
			experiments.GET("", experimentHandler.List)
			experiments.GET("/records", experimentHandler.Records)
			experiments.GET("/:id", experimentHandler.Get)
			experiments.POST("", adminRequired, experimentHandler.Create)
			experiments.PUT("/:id", adminRequired, experimentHandler.Update)
			experiments.POST("/:id/archive", adminRequired, experimentHandler.Archive)
			experiments.POST("/:id/restore", adminRequired, experimentHandler.Restore)

			// 实验附件
			experiments.GET("/:id/attachments", experimentHandler.ListAttachments)
			experiments.GET("/:id/attachments/:attachmentId/download", experimentHandler.DownloadAttachment)
			experiments.POST("/:id/attachments", adminRequired, experimentHandler.UploadAttachment)
			experiments.DELETE("/:id/attachments/:attachmentId", adminRequired, experimentHandler.DeleteAttachment)
		}

		// Search 路由组
		search := apiV1.Group("/search")
		search.Use(authRequired)
		{
			search.GET("", handler.NewSearchHandler(searchService).Search)
		}

		// 变更事件推送 (WebSocket)
		events := apiV1.Group("/events")
		events.Use(authRequired)
		{
			events.GET("", handler.NewEventsHandler(eventHub).Subscribe)
		}

		admin := apiV1.Group("/admin")
		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin.Use(authRequired, adminRequired)
		{
			admin.GET("/users/list", handler.NewAdminHandler(adminService).ListUsers)
			admin.PUT("/users/:userId/role", handler.NewAdminHandler(adminService).UpdateUserRole)
			admin.POST("/reindex", handler.NewAdminHandler(adminService).Reindex)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")
	stopConsumer()

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
