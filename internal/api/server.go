package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/craftconf/bof-api/docs"
	v1 "github.com/craftconf/bof-api/internal/api/handler/v1"
	"github.com/craftconf/bof-api/internal/api/middleware"
	"github.com/craftconf/bof-api/internal/config"
	"github.com/craftconf/bof-api/internal/realtime"
	"github.com/craftconf/bof-api/internal/repository"
	"github.com/craftconf/bof-api/internal/repository/dao"
	"github.com/craftconf/bof-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Hub    *realtime.Hub
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	hub := realtime.NewHub()
	go hub.Run()

	s := &Server{
		Config: conf,
		Router: engine,
		Hub:    hub,
	}

	s.MountMiddlewares()

	authSvc := s.initAuthService(db)
	authHandler := v1.NewAuthHandler(authSvc)
	voteHandler := s.initVoteHandler(db)
	topicHandler := s.initTopicHandler(db)
	sessionHandler := s.initSessionHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	adminHandler := s.initAdminHandler(db)
	realtimeHandler := v1.NewRealtimeHandler(hub)

	authenticator := middleware.NewAuthenticator(authSvc)
	s.MountHandlers(authenticator,
		authHandler, voteHandler, topicHandler, sessionHandler,
		leaderboardHandler, adminHandler, realtimeHandler)

	return s
}

func (s *Server) initAuthService(db *gorm.DB) *service.AuthService {
	repo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	analytics := repository.NewAnalyticsRepository(dao.NewAnalyticsDAO(db))

	return service.NewAuthService(repo, analytics)
}

func (s *Server) initAchievementService(db *gorm.DB) *service.AchievementService {
	store := repository.NewAchievementRepository(dao.NewAchievementDAO(db))
	votes := repository.NewVoteRepository(dao.NewVoteDAO(db))
	topics := repository.NewTopicRepository(dao.NewTopicDAO(db))
	sessions := repository.NewBOFSessionRepository(dao.NewBOFSessionDAO(db))
	view := s.initAggregationService(db)

	return service.NewAchievementService(store, votes, topics, sessions, view)
}

func (s *Server) initAggregationService(db *gorm.DB) *service.AggregationService {
	topics := repository.NewTopicRepository(dao.NewTopicDAO(db))
	votes := repository.NewVoteRepository(dao.NewVoteDAO(db))

	return service.NewAggregationService(topics, votes)
}

func (s *Server) initVoteHandler(db *gorm.DB) *v1.VoteHandler {
	votes := repository.NewVoteRepository(dao.NewVoteDAO(db))
	topics := repository.NewTopicRepository(dao.NewTopicDAO(db))
	analytics := repository.NewAnalyticsRepository(dao.NewAnalyticsDAO(db))
	svc := service.NewVoteService(votes, topics, s.initAchievementService(db), analytics, s.Hub)

	return v1.NewVoteHandler(svc)
}

func (s *Server) initTopicHandler(db *gorm.DB) *v1.TopicHandler {
	svc := s.initTopicService(db)
	view := s.initAggregationService(db)

	return v1.NewTopicHandler(svc, view)
}

func (s *Server) initTopicService(db *gorm.DB) *service.TopicService {
	topics := repository.NewTopicRepository(dao.NewTopicDAO(db))
	participants := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	sessions := repository.NewBOFSessionRepository(dao.NewBOFSessionDAO(db))
	analytics := repository.NewAnalyticsRepository(dao.NewAnalyticsDAO(db))

	return service.NewTopicService(topics, participants, sessions,
		s.initAchievementService(db), analytics, s.Hub)
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	repo := repository.NewBOFSessionRepository(dao.NewBOFSessionDAO(db))
	svc := service.NewSessionService(repo)

	return v1.NewSessionHandler(svc)
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	participants := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	votes := repository.NewVoteRepository(dao.NewVoteDAO(db))
	topics := repository.NewTopicRepository(dao.NewTopicDAO(db))
	achievements := repository.NewAchievementRepository(dao.NewAchievementDAO(db))
	board := service.NewLeaderboardService(participants, votes, topics, achievements)

	return v1.NewLeaderboardHandler(board, s.initAchievementService(db))
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	participants := service.NewParticipantService(
		repository.NewParticipantRepository(dao.NewParticipantDAO(db)))

	return v1.NewAdminHandler(s.initTopicService(db), participants)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	voteHandler *v1.VoteHandler,
	topicHandler *v1.TopicHandler,
	sessionHandler *v1.SessionHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	adminHandler *v1.AdminHandler,
	realtimeHandler *v1.RealtimeHandler,
) {
	const basePath = "/api/v1"

	// Participant traffic carries its participant ID in the payload, the
	// badge token only gates the moderation surface below.
	public := s.Router.Group(basePath)
	{
		public.POST("/auth/verify", authHandler.HandleVerifyToken)
		public.POST("/auth/logout", authHandler.HandleLogout)

		public.GET("/sessions", sessionHandler.HandleListSessions)
		public.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)

		public.POST("/topics", topicHandler.HandleCreateTopic)
		public.GET("/topics", topicHandler.HandleListTopics)
		public.GET("/topics/:topicID", topicHandler.HandleGetTopic)

		public.POST("/votes/cast", voteHandler.HandleCastVote)
		public.GET("/votes/user", voteHandler.HandleGetUserVote)
		public.GET("/votes", voteHandler.HandleListParticipantVotes)

		public.GET("/leaderboard", leaderboardHandler.HandleGetLeaderboard)
		public.GET("/achievements", leaderboardHandler.HandleListAchievementCatalog)
		public.GET("/participants/:participantID/achievements", leaderboardHandler.HandleGetParticipantAchievements)
		public.GET("/participants/:participantID/topics", topicHandler.HandleListTopicsByAuthor)

		public.GET("/ws", realtimeHandler.HandleWebSocket)
	}

	// Topic edit and delete allow the author too, the service checks that.
	moderation := s.Router.Group(basePath+"/admin", authenticator.VerifyToken())
	{
		moderation.PATCH("/topics/:topicID", adminHandler.HandleEditTopic)
		moderation.DELETE("/topics/:topicID", adminHandler.HandleRemoveTopic)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyToken(), authenticator.RequireAdmin())
	{
		admin.PUT("/topics/:topicID/visibility", adminHandler.HandleSetTopicVisibility)
		admin.PUT("/topics/:topicID/move", adminHandler.HandleMoveTopic)

		admin.GET("/participants", adminHandler.HandleListParticipants)
		admin.POST("/participants", adminHandler.HandleCreateParticipant)
		admin.PUT("/participants/:participantID/block", adminHandler.HandleSetParticipantBlocked)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "BOF Voting API"
	docs.SwaggerInfo.Description = "Topic voting and gamification backend for conference BOF sessions."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
