package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/docs"
	v1 "github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/pkg/payment"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	ticketHandler := s.initTicketHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, ticketHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	reviewRepo := repository.NewReviewRepository(dao.NewReviewDAO(db))
	svc := service.NewEventService(eventRepo, userRepo, reviewRepo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	payments := payment.NewStripeClient(s.Config.Stripe)
	svc := service.NewTicketService(ticketRepo, eventRepo, payments)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, ticketHandler *v1.TicketHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/events", eventHandler.HandleGetAllEvents)
		public.GET("/events/upcoming", eventHandler.HandleGetUpcomingEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/hosts/:hostID", eventHandler.HandleGetHostDetails)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.POST("/events", eventHandler.HandleCreateEvent)
		protected.POST("/events/:eventID/publish", eventHandler.HandlePublishEvent)
		protected.POST("/events/:eventID/unpublish", eventHandler.HandleUnpublishEvent)
		protected.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		protected.GET("/events/:eventID/guests", eventHandler.HandleGetGuestList)
		protected.GET("/user", userHandler.HandleGetProfile)
		protected.GET("/host/events", eventHandler.HandleGetHostEvents)
		protected.GET("/user/events", eventHandler.HandleGetAttendingEvents)
		protected.POST("/events/:eventID/tickets/purchase", ticketHandler.HandlePurchaseTickets)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Ticketing API"
	docs.SwaggerInfo.Description = "An event ticketing API built with Gin."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
