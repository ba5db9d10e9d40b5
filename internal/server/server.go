package server

import (
	"context"
	"net/http"

	"github.com/GianSanchez-dev/hooping-week/internal/auth"
	"github.com/GianSanchez-dev/hooping-week/internal/booking"
	"github.com/GianSanchez-dev/hooping-week/internal/config"
	"github.com/GianSanchez-dev/hooping-week/internal/notify"
	"github.com/GianSanchez-dev/hooping-week/internal/team"
	"github.com/GianSanchez-dev/hooping-week/internal/user"
	"github.com/GianSanchez-dev/hooping-week/internal/venue"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	notify *notify.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifyService *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	venueRepo := venue.NewRepository(db)
	teamRepo := team.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	venueHandler := venue.NewHandler(venue.NewService(venueRepo))
	teamHandler := team.NewHandler(teamRepo)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, venueRepo, teamRepo, userRepo, notifyService))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	// Browsing the catalog and the calendar needs no account.
	router.GET("/venues", venueHandler.ListVenues)
	router.GET("/venues/:venueID", venueHandler.GetVenue)
	router.GET("/venues/:venueID/occupancy", bookingHandler.WeeklyOccupancy)
	router.GET("/bookings", bookingHandler.List)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/me", userHandler.GetMe)

		protected.POST("/bookings", bookingHandler.Submit)
		protected.DELETE("/bookings/:bookingID", bookingHandler.Cancel)

		protected.GET("/teams", teamHandler.ListTeams)
		protected.POST("/teams", teamHandler.CreateTeam)
		protected.POST("/teams/:teamID/players", teamHandler.AddPlayer)
		protected.DELETE("/teams/players/:playerID", teamHandler.DeletePlayer)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/venues", venueHandler.CreateVenue)
		admin.PUT("/venues/:venueID", venueHandler.UpdateVenue)
		admin.DELETE("/venues/:venueID", venueHandler.DeleteVenue)

		admin.PATCH("/bookings/:bookingID/status", bookingHandler.Decide)
		admin.POST("/blocks", bookingHandler.CreateBlock)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(notifyService))
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
		db:     db,
		config: cfg,
		notify: notifyService,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown stops accepting new connections and waits for in-flight
// requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests and for the http.Server in main.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
