package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "live-foto-event-back/docs"
	"live-foto-event-back/internal/handler"
	"live-foto-event-back/internal/realtime"
	"live-foto-event-back/internal/service"
	"live-foto-event-back/internal/storage/postgres"
	"live-foto-event-back/internal/storage/s3"
)

// @title LiveFotoEvent API
// @version 1.0
// @description API для живой фотогалереи событий
// @host api.foto.live
// @BasePath /
// @schemes https
func main() {

	// Загрузка переменных окружения (local)
	if err := godotenv.Load(".env.local"); err != nil {
		log.Println("Error loading .env.local file")
	}

	// БД
	db := postgres.InitDB()

	// Объектное хранилище
	s3Storage, err := s3.NewS3Storage(s3.S3Config{
		Region:          os.Getenv("S3_REGION"),
		Bucket:          os.Getenv("S3_BUCKET"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("S3_ENDPOINT"),
	})
	if err != nil {
		log.Fatalf("S3 init error: %v", err)
	}

	// Realtime-хаб событий
	hub := realtime.NewHub()
	go hub.Run()

	// Сервисы
	userService := service.NewUserService(db)
	eventService := service.NewEventService(db)
	uploadService := service.NewUploadService(db, s3Storage, hub)
	oauthService := service.NewYandexOAuthService(service.NewYandexOAuthConfig(), db)

	// Обработчик
	h := handler.NewHandler(userService, eventService, uploadService, oauthService, hub)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем в консоль
		if err, ok := recovered.(string); ok {
			log.Printf("panic recovered: %s\n", err)
		} else if err, ok := recovered.(error); ok {
			log.Printf("panic recovered: %v\n", err)
		} else {
			log.Printf("panic recovered: unknown error: %v\n", recovered)
		}
		// Отправляем 500 клиенту
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://foto.live", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Авторизация
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/yandex/login", h.YandexLogin)
		auth.GET("/yandex/callback", h.YandexCallback)
	}

	// Профиль
	profile := r.Group("/profile")
	{
		profile.Use(h.AuthMiddleware())
		profile.GET("/", h.GetProfile)
	}

	// События
	event := r.Group("/event")
	{
		event.Use(h.AuthMiddleware())
		event.POST("/create", h.CreateEvent)
		event.GET("/list", h.ListEvents)
		event.GET("/:slug", h.GetEventInfo)
		event.DELETE("/:slug", h.DeleteEvent)
		event.POST("/:slug/publish", h.PublishEvent)
		event.PUT("/:slug/cover", h.UpdateEventCover)
		event.GET("/:slug/photos", h.GetEventPhotos)
	}

	// Загрузка файлов
	upload := r.Group("/upload")
	{
		upload.Use(h.AuthMiddleware())
		upload.POST("/files", h.UploadFiles)
		upload.DELETE("/photo/:id", h.DeletePhoto)
	}

	// Realtime-канал события (подписка зрителей)
	live := r.Group("/live")
	{
		live.GET("/:slug", h.JoinEvent)
		live.GET("/:slug/presence", h.GetPresence)
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Fatal(r.Run(":8080"))
}
