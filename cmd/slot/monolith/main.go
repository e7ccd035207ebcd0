package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MihneaE/slot-machine-microservices/internal/config"
	gatewayHttp "github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/adapter/http"
	gatewayLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/adapter/local"
	gatewayUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/usecase"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/gateway/ws"
	ledgerLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/adapter/local"
	ledgerDomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	ledgerDB "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/repository/db"
	ledgerMemory "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/repository/memory"
	ledgerRedis "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/repository/redis"
	ledgerUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/usecase"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/rng"
	rngLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/rng/adapter/local"
	slotLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/adapter/local"
	slotDomain "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/domain"
	slotUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/slot/usecase"
	userHttp "github.com/MihneaE/slot-machine-microservices/internal/modules/user/adapter/http"
	userLocal "github.com/MihneaE/slot-machine-microservices/internal/modules/user/adapter/local"
	userRepo "github.com/MihneaE/slot-machine-microservices/internal/modules/user/repository"
	userUseCase "github.com/MihneaE/slot-machine-microservices/internal/modules/user/usecase"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// devTokenValidator accepts any non-empty token and treats it as the
// player name. Used in memory mode where no player table exists.
type devTokenValidator struct{}

func (devTokenValidator) ValidateToken(_ context.Context, token string) (int64, string, time.Time, error) {
	if token == "" {
		return 0, "", time.Time{}, fmt.Errorf("empty token")
	}
	return 0, token, time.Now().Add(24 * time.Hour), nil
}

func main() {
	pprofPort := flag.String("pprof-port", "", "Port to run pprof server on (e.g., 6060)")
	background := flag.Bool("d", false, "Run in background mode (disable console logging)")
	flag.Parse()

	// If background is true, disable console logging
	logger.InitWithFile("logs/slot/monolith.log", "info", "json", !*background)
	defer logger.Flush()

	if *pprofPort != "" {
		go func() {
			addr := "localhost:" + *pprofPort
			logger.InfoGlobal().Str("addr", addr).Msg("Starting pprof server")
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.ErrorGlobal().Err(err).Msg("Failed to start pprof server")
			}
		}()
	}

	fmt.Println("Starting Slot Monolith... Logs are being written to logs/slot/monolith.log (rotating)")
	logger.InfoGlobal().Msg("Starting Slot Monolith...")

	// 1. Load Config
	cfg := config.LoadMonolithConfig()

	// 2. Initialize Infrastructure
	var db *gorm.DB
	if cfg.Slot.RepoType == "postgres" {
		dbConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Slot.Database.Host, cfg.Slot.Database.Port, cfg.Slot.Database.User, cfg.Slot.Database.Password, cfg.Slot.Database.Name)

		gormLog := logger.NewGormLogger()
		gormLog.LogLevel = gormlogger.Warn

		var err error
		db, err = gorm.Open(postgres.Open(dbConnStr), &gorm.Config{
			Logger: gormLog,
		})
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to get database instance")
		}

		// Postgres default max_connections is usually 100; leave room for
		// other tools
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)

		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to ping database")
		}
		logger.InfoGlobal().Msg("Database connected")
	}

	var rdb *redis.Client
	if cfg.Slot.ResultCache {
		rdb = redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", cfg.Slot.Redis.Host, cfg.Slot.Redis.Port),
		})
		defer rdb.Close()
		logger.InfoGlobal().Msg("Redis connected")
	}

	// 3. Initialize Modules

	// Ledger Module
	var ledgerStore ledgerDomain.Store
	if cfg.Slot.RepoType == "postgres" {
		ledgerStore = ledgerDB.NewStore(db)
		logger.InfoGlobal().Msg("Ledger store: Postgres")
	} else {
		ledgerStore = ledgerMemory.NewStore()
		logger.InfoGlobal().Msg("Ledger store: Memory")
	}

	var resultCache ledgerDomain.ResultCache
	if rdb != nil {
		resultCache = ledgerRedis.NewResultCache(rdb)
		logger.InfoGlobal().Msg("Ledger result cache: Redis")
	}

	ledgerUC := ledgerUseCase.NewLedgerUseCase(ledgerStore, resultCache)
	ledgerSvc := ledgerLocal.NewHandler(ledgerUC)
	logger.InfoGlobal().Msg("Ledger module initialized")

	// RNG Module
	generator := rng.NewGenerator()
	rngSvc := rngLocal.NewHandler(generator)
	logger.InfoGlobal().Msg("RNG module initialized")

	// Slot Module
	keyGen := slotDomain.SnowflakeKeyGenerator(int64(cfg.Slot.SnowflakeNode))
	spinUC := slotUseCase.NewSpinUseCase(rngSvc, ledgerSvc, keyGen)
	slotSvc := slotLocal.NewHandler(spinUC)
	logger.InfoGlobal().Msg("Slot module initialized")

	// User Module (only with a database; registration needs durable players)
	var userHttpHandler *userHttp.Handler
	var userSvc service.UserService
	if db != nil {
		playerRepository := userRepo.NewPlayerRepository(db)
		sessionRepository := userRepo.NewSessionRepository(db)
		userUC := userUseCase.NewUserUseCase(playerRepository, sessionRepository, ledgerSvc, cfg.User.JWT.Secret, cfg.User.JWT.Duration)
		userSvc = userLocal.NewHandler(userUC)
		userHttpHandler = userHttp.NewHandler(userUC)
		logger.InfoGlobal().Msg("User module initialized")
	} else {
		// Memory mode has no player table; the bearer token is taken as
		// the player name. Development only.
		userSvc = devTokenValidator{}
		logger.WarnGlobal().Msg("User module disabled (memory mode), using dev token validation")
	}

	// Gateway Module
	wsManager := ws.NewManager()
	go wsManager.Run()

	broadcaster := gatewayLocal.NewBroadcaster(wsManager)
	gatewayUC := gatewayUseCase.NewGatewayUseCase(slotSvc, ledgerSvc, rngSvc, broadcaster)
	gatewayHttpHandler := gatewayHttp.NewHandler(gatewayUC, wsManager, userSvc)
	logger.InfoGlobal().Msg("Gateway module initialized")

	// 4. Setup HTTP Servers

	// Gateway Server (game API + WebSocket)
	gatewayRouter := gin.New()
	gatewayRouter.Use(gin.Recovery())
	gatewayRouter.Use(logger.GinMiddleware())

	gatewayRouter.GET("/ws", func(c *gin.Context) {
		gatewayHttpHandler.HandleWebSocket(c.Writer, c.Request)
	})
	gatewayRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := gatewayRouter.Group("/api")
	{
		gatewayHttpHandler.RegisterRoutes(api)
		gatewayHttpHandler.RegisterAdminRoutes(api.Group("/admin"))
	}

	// User HTTP Server (REST API)
	var userSrv *http.Server
	if userHttpHandler != nil {
		userRouter := gin.New()
		userRouter.Use(gin.Recovery())
		userRouter.Use(logger.GinMiddleware())

		userAPI := userRouter.Group("/api")
		{
			userHttpHandler.RegisterRoutes(userAPI.Group("/users"))
		}

		userSrv = &http.Server{
			Addr:    ":" + cfg.User.Server.Port,
			Handler: userRouter,
		}
	}

	// 5. Start Servers
	gatewayPort := cfg.Gateway.Server.Port

	gatewaySrv := &http.Server{
		Addr:    ":" + gatewayPort,
		Handler: gatewayRouter,
	}

	logger.InfoGlobal().
		Str("gateway_port", gatewayPort).
		Str("ws_url", fmt.Sprintf("ws://localhost:%s/ws?token=YOUR_TOKEN", gatewayPort)).
		Str("game_api_url", fmt.Sprintf("http://localhost:%s/api/game", gatewayPort)).
		Msg("Slot Monolith running")

	go func() {
		if err := gatewaySrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("Gateway server failed")
		}
	}()

	if userSrv != nil {
		go func() {
			if err := userSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.FatalGlobal().Err(err).Msg("User HTTP server failed")
			}
		}()
	}

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoGlobal().Msg("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := gatewaySrv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("Gateway server forced to shutdown")
	}

	if userSrv != nil {
		if err := userSrv.Shutdown(ctx); err != nil {
			logger.ErrorGlobal().Err(err).Msg("User HTTP server forced to shutdown")
		}
	}

	logger.InfoGlobal().Msg("Closing all WebSocket connections...")
	wsManager.Shutdown()

	logger.InfoGlobal().Msg("Server exited properly")
}
