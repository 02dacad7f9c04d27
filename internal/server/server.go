package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/internal/config"
	"anoa.com/kitaplik/internal/middleware"
	"anoa.com/kitaplik/internal/scheduler"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/database"
	"anoa.com/kitaplik/pkg/logger"
	"anoa.com/kitaplik/pkg/ratelimit"
	"anoa.com/kitaplik/pkg/response"

	activityRepo "anoa.com/kitaplik/internal/modules/activity/repository"
	activityService "anoa.com/kitaplik/internal/modules/activity/service"

	adminHttp "anoa.com/kitaplik/internal/modules/admin/delivery/http"

	badgeHttp "anoa.com/kitaplik/internal/modules/badge/delivery/http"
	badgeRepo "anoa.com/kitaplik/internal/modules/badge/repository"
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"

	bookHttp "anoa.com/kitaplik/internal/modules/book/delivery/http"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	bookService "anoa.com/kitaplik/internal/modules/book/service"

	categoryHttp "anoa.com/kitaplik/internal/modules/category/delivery/http"
	categoryRepo "anoa.com/kitaplik/internal/modules/category/repository"
	categoryService "anoa.com/kitaplik/internal/modules/category/service"

	dailyHttp "anoa.com/kitaplik/internal/modules/daily/delivery/http"
	dailyRepo "anoa.com/kitaplik/internal/modules/daily/repository"
	dailyService "anoa.com/kitaplik/internal/modules/daily/service"

	duelHttp "anoa.com/kitaplik/internal/modules/duel/delivery/http"
	duelRepo "anoa.com/kitaplik/internal/modules/duel/repository"
	duelService "anoa.com/kitaplik/internal/modules/duel/service"

	friendRepo "anoa.com/kitaplik/internal/modules/friendship/repository"
	giftRepo "anoa.com/kitaplik/internal/modules/gift/repository"

	leaderboardHttp "anoa.com/kitaplik/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "anoa.com/kitaplik/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/kitaplik/internal/modules/leaderboard/service"

	ledgerRepo "anoa.com/kitaplik/internal/modules/ledger/repository"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"

	"anoa.com/kitaplik/internal/modules/marathon"

	notiHttp "anoa.com/kitaplik/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/kitaplik/internal/modules/notification/repository"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"

	profileHttp "anoa.com/kitaplik/internal/modules/profile/delivery/http"
	profileService "anoa.com/kitaplik/internal/modules/profile/service"

	questHttp "anoa.com/kitaplik/internal/modules/quest/delivery/http"
	questRepo "anoa.com/kitaplik/internal/modules/quest/repository"
	questService "anoa.com/kitaplik/internal/modules/quest/service"

	rewardHttp "anoa.com/kitaplik/internal/modules/reward/delivery/http"
	rewardService "anoa.com/kitaplik/internal/modules/reward/service"

	statHttp "anoa.com/kitaplik/internal/modules/stat/delivery/http"
	statService "anoa.com/kitaplik/internal/modules/stat/service"

	userRepo "anoa.com/kitaplik/internal/modules/user/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	scheduler   *scheduler.Scheduler
	db          *gorm.DB
	redisClient *redis.Client
	log         *logger.Logger
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, cat *catalog.Catalog, log *logger.Logger) (*Server, error) {
	response.SetLogger(log)
	clk := clock.Real()
	loc := cfg.Timezone

	userRepo := userRepo.NewUserRepository(db)
	txRunner := database.NewTxRunner(db)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient, clk, log)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, log)

	ledgerSvc := ledgerService.NewLedgerService(ledgerRepo.NewLedgerRepository(db), notificationSvc, clk, log)
	activitySvc := activityService.NewActivityService(activityRepo.NewActivityRepository(db), clk)

	questRepository := questRepo.NewQuestRepository(db)
	questSvc := questService.NewQuestService(questRepository, ledgerSvc, notificationSvc, cat, clk, loc, log)
	questHandler := questHttp.NewQuestHandler(questSvc)

	badgeSvc := badgeService.NewBadgeService(badgeRepo.NewBadgeRepository(db), notificationSvc, clk, log)
	badgeHandler := badgeHttp.NewBadgeHandler(badgeSvc)

	bookRepository := bookRepo.NewBookRepository(db)
	bookSvc := bookService.NewBookService(bookRepository, clk, loc)
	bookHandler := bookHttp.NewBookHandler(bookSvc)

	categorySvc := categoryService.NewCategoryService(categoryRepo.NewCategoryRepository(db))
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	dailySvc := dailyService.NewDailyService(dailyRepo.NewTriviaRepository(db), bookRepository, clk, loc, cfg.DailyTriviaSize, cfg.BookOfDayPool)
	dailyHandler := dailyHttp.NewDailyHandler(dailySvc)

	duelSvc := duelService.NewDuelService(duelRepo.NewDuelRepository(db), userRepo, bookRepository, ledgerSvc, notificationSvc, log)
	duelHandler := duelHttp.NewDuelHandler(duelSvc)

	marathonFlag := marathon.NewRedisFlag(redisClient)
	adminHandler := adminHttp.NewAdminHandler(marathonFlag, log)

	rewardSvc := rewardService.NewRewardService(rewardService.Deps{
		Tx:       txRunner,
		Ledger:   ledgerSvc,
		Activity: activitySvc,
		Quests:   questSvc,
		Badges:   badgeSvc,
		Duels:    duelSvc,
		Daily:    dailySvc,
		Books:    bookRepository,
		Goals:    bookSvc,
		Friends:  friendRepo.NewFriendshipRepository(db),
		Gifts:    giftRepo.NewGiftRepository(db),
		Notifier: notificationSvc,
		Marathon: marathonFlag,
		Limiter:  ratelimit.New(redisClient, cfg.GiftRateLimit),
		Clock:    clk,
		Log:      log,
	}, rewardService.Options{
		DedupWindow:   cfg.DedupWindow,
		GiftMaxAmount: cfg.GiftMaxAmount,
	})
	rewardHandler := rewardHttp.NewRewardHandler(rewardSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), clk)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	profileSvc := profileService.NewProfileService(userRepo, leaderboardSvc, badgeSvc, bookSvc, questSvc, activitySvc)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	statSvc := statService.NewStatService(userRepo, bookRepository)
	statHandler := statHttp.NewStatHandler(statSvc)

	jobs := scheduler.New(loc, log)
	for _, job := range []scheduler.Job{
		&scheduler.QuestRollover{Quests: questSvc, Clock: clk, Retention: cfg.QuestRetention},
		&scheduler.NotificationCleanup{Notifications: notificationSvc, Log: log},
	} {
		if err := jobs.Register(job); err != nil {
			return nil, err
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/notifications/ws", "/healthz"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Every route requires a token issued by the identity provider.
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/marathon", adminHandler.StartMarathon)
			adminGroup.DELETE("/marathon", adminHandler.StopMarathon)
			adminGroup.GET("/marathon", adminHandler.MarathonStatus)
			adminGroup.POST("/categories", categoryHandler.CreateCategory)
			adminGroup.DELETE("/categories/:id", categoryHandler.DeleteCategory)
			adminGroup.POST("/books", categoryHandler.CreateBook)
		}

		// Book routes
		protected.GET("/categories", categoryHandler.GetAllCategories)
		protected.POST("/books/:book_id/complete", rewardHandler.CompleteBook)
		protected.GET("/books/of-the-day", dailyHandler.BookOfTheDay)
		protected.GET("/goals", bookHandler.GetGoal)
		protected.PUT("/goals", bookHandler.SetGoal)

		// Trivia routes
		protected.GET("/trivia/today", dailyHandler.TodayTrivia)
		protected.POST("/trivia/submit", rewardHandler.SubmitTrivia)

		// Duel routes
		protected.POST("/duels", rewardHandler.Challenge)
		protected.GET("/duels", duelHandler.List)
		protected.POST("/duels/:id/accept", rewardHandler.AcceptDuel)
		protected.POST("/duels/:id/reject", rewardHandler.RejectDuel)

		// Social routes
		protected.POST("/gifts", rewardHandler.SendGift)
		protected.POST("/friends", rewardHandler.AddFriend)

		// Progress routes
		protected.GET("/quests", questHandler.ListActive)
		protected.POST("/quests/:id/claim", rewardHandler.ClaimQuest)
		protected.GET("/badges/me", badgeHandler.MyBadges)
		protected.GET("/me/progress", profileHandler.GetProgress)
		protected.GET("/profile/:username", profileHandler.GetProfileByUsername)
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/stats", statHandler.GetCommunityStats)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		scheduler:   jobs,
		db:          db,
		redisClient: redisClient,
		log:         log.With("component", "server"),
	}, nil
}

// Run starts the background jobs and serves HTTP until Shutdown is called.
func (s *Server) Run(addr string) error {
	s.scheduler.Start()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("http server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Jobs exposes the scheduler so maintenance jobs can be run on demand.
func (s *Server) Jobs() *scheduler.Scheduler {
	return s.scheduler
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
