package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // 导入 swag

	"github.com/MaximilianIsing/PathPal/config"
	_ "github.com/MaximilianIsing/PathPal/docs" // 导入 swagger 文档
	"github.com/MaximilianIsing/PathPal/handlers"
	"github.com/MaximilianIsing/PathPal/logger"
	"github.com/MaximilianIsing/PathPal/services"
	"github.com/MaximilianIsing/PathPal/store"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// 初始化存储层
	profileStore := store.NewProfileStore(cfg.Data.ProfileCSV)
	datasetCache := store.NewDatasetCache(cfg.Data.CollegeCSV, time.Duration(cfg.Data.CacheTTLSec)*time.Second)
	logger.Info("存储层初始化完成",
		"profile_csv", cfg.Data.ProfileCSV,
		"college_csv", cfg.Data.CollegeCSV,
		"cache_ttl_sec", cfg.Data.CacheTTLSec)

	// 初始化服务层
	catalogService := services.NewCatalogService(datasetCache)
	chatService := services.NewChatService(cfg)
	profileService := services.NewProfileService(profileStore)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	api := handlers.NewAPI(catalogService, chatService, profileService)
	api.RegisterRoutes(r)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  secondsOrDefault(cfg.Timeouts.RequestSec, 30),
		WriteTimeout: secondsOrDefault(cfg.Timeouts.ResponseSec, 90),
		IdleTimeout:  secondsOrDefault(cfg.Timeouts.IdleSec, 120),
	}

	logger.Info("服务器启动", "address", cfg.Server.Addr)
	logger.Info("Swagger文档可访问", "url", "http://localhost"+cfg.Server.Addr+"/swagger/index.html")
	log.Fatal(server.ListenAndServe())
}

// secondsOrDefault 把配置的秒数转换为时间间隔，未配置时使用默认值
func secondsOrDefault(seconds, def int) time.Duration {
	if seconds <= 0 {
		seconds = def
	}
	return time.Duration(seconds) * time.Second
}
