package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/warden/internal/config"
	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api"
	"github.com/Nixie-Tech-LLC/warden/internal/http/api/endpoints"
	"github.com/Nixie-Tech-LLC/warden/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/warden/internal/notify"
	"github.com/Nixie-Tech-LLC/warden/internal/redis"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, cache *redis.ScheduleCache, publisher notify.Publisher) {
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		endpoints.AuthPublicModule(cfg.JWTSecret, store),
	)

	schedules := endpoints.NewScheduleController(store, cache, publisher, cfg.Timezone)
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		endpoints.AuthSessionModule(cfg.JWTSecret, store),
		endpoints.CameraModule(store),
		endpoints.ScheduleModule(schedules),
		endpoints.PermissionModule(store),
	)
}
