package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"oishii/backend/internal/auth"
	"oishii/backend/internal/config"
	"oishii/backend/internal/database"
	"oishii/backend/internal/handler"
	"oishii/backend/internal/hub"
	"oishii/backend/internal/storage"
	"oishii/backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "oishii/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Oishii API
// @version         1.0
// @description     This is the API for the Oishii restaurant discovery service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Media storage: S3-compatible when an endpoint is configured, local
	// filesystem otherwise.
	var media storage.Storage
	localMedia := config.AppConfig.S3Endpoint == ""
	if localMedia {
		local, err := storage.NewLocal(config.AppConfig.MediaDir)
		if err != nil {
			log.Fatalf("Failed to prepare media directory: %v", err)
		}
		media = local
	} else {
		s3, err := storage.NewS3(context.Background(), storage.S3Options{
			Endpoint:  config.AppConfig.S3Endpoint,
			Bucket:    config.AppConfig.S3Bucket,
			AccessKey: config.AppConfig.S3AccessKey,
			SecretKey: config.AppConfig.S3SecretKey,
			UseSSL:    config.AppConfig.S3UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to media storage: %v", err)
		}
		media = s3
	}

	// Wire the stores in dependency order. The notifier publishes unread
	// counts through the event hub; the review store drives the list and
	// feed side effects.
	events := hub.NewHub()
	notifier := store.NewNotifier(database.DB, events)
	feed := store.NewFeedStore(database.DB, notifier)
	lists := store.NewListStore(database.DB)
	reviews := store.NewReviewStore(database.DB, lists, feed, media)
	social := store.NewSocialStore(database.DB)
	accounts := store.NewAccountStore(database.DB)
	handler.Init(accounts, lists, reviews, social, feed, notifier, events)

	router := gin.Default()
	router.Use(cors.Default())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Uploaded photos are served straight from disk in the local setup.
	if localMedia {
		router.Static("/media", config.AppConfig.MediaDir)
	}

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me/profile", handler.UpdateMyProfile)
			userRoutes.GET("/:id", handler.GetUserByID)
			userRoutes.GET("/:id/activities", handler.GetUserActivities)

			// Follow + friendship routes
			userRoutes.POST("/:id/follow", handler.ToggleFollow)
			userRoutes.POST("/:id/friend-request", handler.SendFriendRequest)
			userRoutes.POST("/:id/accept", handler.AcceptFriendRequest)
			userRoutes.POST("/:id/reject", handler.RejectFriendRequest)
			userRoutes.POST("/:id/cancel-request", handler.CancelFriendRequest)
			userRoutes.POST("/:id/unfriend", handler.RemoveFriend)
		}

		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", handler.GetFriends)
		}

		// Restaurant routes. Browsing works without a token; pin info is
		// added when one is sent. Mutations stay protected.
		restaurantRoutes := apiV1.Group("/restaurants")
		{
			restaurantRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetRestaurants)
			restaurantRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetRestaurantByID)
			restaurantRoutes.POST("/:id/pin", auth.AuthMiddleware(), handler.TogglePin)
			restaurantRoutes.GET("/:id/lists", auth.AuthMiddleware(), handler.GetListPicker)
			restaurantRoutes.POST("/:id/lists/:listID", auth.AuthMiddleware(), handler.ToggleInList)
		}

		// List routes (protected)
		listRoutes := apiV1.Group("/lists")
		listRoutes.Use(auth.AuthMiddleware())
		{
			listRoutes.POST("", handler.CreateList)
			listRoutes.GET("", handler.GetLists)
			listRoutes.GET("/:id", handler.GetListByID)
			listRoutes.PUT("/:id", handler.UpdateList)
			listRoutes.DELETE("/:id", handler.DeleteList)
			listRoutes.DELETE("/:id/pins/:pinID", handler.DeletePin)
		}

		// Review routes (protected)
		reviewRoutes := apiV1.Group("/reviews")
		reviewRoutes.Use(auth.AuthMiddleware())
		{
			reviewRoutes.POST("", handler.UpsertReview)
			reviewRoutes.GET("/mine", handler.GetMyReviews)
		}
		photoRoutes := apiV1.Group("/photos")
		photoRoutes.Use(auth.AuthMiddleware())
		{
			photoRoutes.DELETE("/:id", handler.DeletePhoto)
		}

		// Feed routes (protected)
		feedRoutes := apiV1.Group("/feed")
		feedRoutes.Use(auth.AuthMiddleware())
		{
			feedRoutes.GET("", handler.GetFeed)
		}
		activityRoutes := apiV1.Group("/activities")
		activityRoutes.Use(auth.AuthMiddleware())
		{
			activityRoutes.POST("/:id/like", handler.ToggleLike)
			activityRoutes.POST("/:id/comments", handler.AddComment)
		}
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.POST("/:id/like", handler.ToggleCommentLike)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.GET("/count", handler.GetNotificationCount)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
		}
		apiV1.GET("/events", auth.AuthMiddleware(), handler.StreamEvents)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRestaurantRoutes := adminRoutes.Group("/restaurants")
			{
				adminRestaurantRoutes.POST("", handler.CreateRestaurant)
				adminRestaurantRoutes.PUT("/:id", handler.UpdateRestaurant)
				adminRestaurantRoutes.DELETE("/:id", handler.DeleteRestaurant)
			}
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ListenAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ListenAddr))
}
