package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hackathonweekly/community-api/docs"
	v1 "github.com/hackathonweekly/community-api/internal/api/handler/v1"
	"github.com/hackathonweekly/community-api/internal/api/middleware"
	"github.com/hackathonweekly/community-api/internal/config"
	"github.com/hackathonweekly/community-api/internal/repository"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
	"github.com/hackathonweekly/community-api/internal/service"
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
	submissionHandler := s.initSubmissionHandler(db)
	voteHandler := s.initVoteHandler(db)
	orgHandler := s.initOrganizationHandler(db)
	invitationHandler := s.initInvitationHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, submissionHandler, voteHandler, orgHandler, invitationHandler)

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
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initSubmissionHandler(db *gorm.DB) *v1.SubmissionHandler {
	submissionDAO := dao.NewSubmissionDAO(db)
	repo := repository.NewSubmissionRepository(submissionDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(db))
	svc := service.NewSubmissionService(repo, eventRepo, voteRepo)
	handler := v1.NewSubmissionHandler(svc)

	return handler
}

func (s *Server) initVoteHandler(db *gorm.DB) *v1.VoteHandler {
	voteDAO := dao.NewVoteDAO(db)
	repo := repository.NewVoteRepository(voteDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))
	svc := service.NewVoteService(repo, eventRepo, submissionRepo)
	handler := v1.NewVoteHandler(svc)

	return handler
}

func (s *Server) initOrganizationHandler(db *gorm.DB) *v1.OrganizationHandler {
	orgDAO := dao.NewOrganizationDAO(db)
	repo := repository.NewOrganizationRepository(orgDAO)
	svc := service.NewOrganizationService(repo)
	handler := v1.NewOrganizationHandler(svc)

	return handler
}

func (s *Server) initInvitationHandler(db *gorm.DB) *v1.InvitationHandler {
	invitationDAO := dao.NewInvitationDAO(db)
	repo := repository.NewInvitationRepository(invitationDAO)
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewInvitationService(repo, orgRepo, s.Config.API.BaseURL, s.Config.API.InvitationTTLDays)
	handler := v1.NewInvitationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	submissionHandler *v1.SubmissionHandler,
	voteHandler *v1.VoteHandler,
	orgHandler *v1.OrganizationHandler,
	invitationHandler *v1.InvitationHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/invitations/:code", invitationHandler.HandleResolveInvitation)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events", eventHandler.HandleGetEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.POST("/events/:eventID/register", eventHandler.HandleRegister)

		authed.POST("/events/:eventID/submissions", submissionHandler.HandleCreateSubmission)
		authed.GET("/events/:eventID/submissions", submissionHandler.HandleGetSubmissions)
		authed.PATCH("/events/:eventID/submissions/:submissionID", submissionHandler.HandleReviewSubmission)
		authed.DELETE("/events/:eventID/submissions/:submissionID", submissionHandler.HandleDeleteSubmission)

		authed.POST("/events/:eventID/submissions/:submissionID/vote", voteHandler.HandleVote)
		authed.DELETE("/events/:eventID/submissions/:submissionID/vote", voteHandler.HandleUnvote)
		authed.GET("/events/:eventID/remaining-votes", voteHandler.HandleRemainingVotes)

		authed.POST("/organizations", orgHandler.HandleCreateOrganization)
		authed.GET("/organizations/:organizationID", orgHandler.HandleGetOrganization)
		authed.GET("/organizations/:organizationID/members", orgHandler.HandleGetMembers)

		authed.POST("/organizations/:organizationID/invitations", invitationHandler.HandleCreateInvitation)
		authed.DELETE("/organizations/:organizationID/invitations/:invitationID", invitationHandler.HandleCancelInvitation)
		authed.POST("/invitations/:code/accept", invitationHandler.HandleAcceptInvitation)
		authed.POST("/invitations/:code/reject", invitationHandler.HandleRejectInvitation)
		authed.GET("/organizations/:organizationID/applications", invitationHandler.HandleListApplications)
		authed.POST("/organizations/:organizationID/applications/:applicationID/review", invitationHandler.HandleReviewApplication)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Community API"
	docs.SwaggerInfo.Description = "Events, submissions, voting and organization invitations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
