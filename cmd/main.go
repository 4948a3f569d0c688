package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/adapters"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/bootstrap"
	archiveDelivery "github.com/sadok-lajmi/TenukiGo-2025/internal/delivery/archive"
	viewerDelivery "github.com/sadok-lajmi/TenukiGo-2025/internal/delivery/viewer"
	ownMiddleware "github.com/sadok-lajmi/TenukiGo-2025/internal/middleware"
	repo "github.com/sadok-lajmi/TenukiGo-2025/internal/repository"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/archive"
	gameuc "github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/game"
	analysisProto "github.com/sadok-lajmi/TenukiGo-2025/microservices/proto"
)

type mainDeliveryHandler struct {
	viewer  *viewerDelivery.ViewerHandler
	archive *archiveDelivery.ArchiveHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.close(context.Background())

	var analyzer gameuc.Analyzer
	if cfg.AnalysisGrpcAddr != "" {
		conn, err := grpc.NewClient(cfg.AnalysisGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			logger.Fatal("Failed to dial grpc", zap.Error(err))
		}
		defer conn.Close()
		analyzer = repo.NewAnalysisClient(logger, analysisProto.NewAnalysisServiceClient(conn))
	} else {
		logger.Warn("ANALYSIS_GRPC_ADDR is empty, analysis is disabled")
	}

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(cfg, logger, analyzer, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: r,
	}
	go handleShutdown(cancel, server, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.viewer.Router(r)
	h.archive.Router(r)
}

// initDatabaseAdapters connects the record stores that are configured. Both are optional.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	databaseAdapters := &dataBaseAdapters{}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
		databaseAdapters.mongoAdapter = mongoAdapter
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		databaseAdapters.redisAdapter = redisAdapter
	}

	log.Info("Database adapters initialized")
	return databaseAdapters
}

func (d *dataBaseAdapters) close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

// recordRepository reads through Redis into Mongo, skipping whichever is not configured.
func (d *dataBaseAdapters) recordRepository(cfg *bootstrap.Config, log *zap.SugaredLogger) *repo.RecordRepository {
	var cache repo.RecordCache
	if d.redisAdapter != nil {
		cache = repo.NewRedisRecordCache(d.redisAdapter.GetClient())
	}
	var matches repo.MatchArchive
	if d.mongoAdapter != nil {
		matches = repo.NewMongoMatchArchive(log, d.mongoAdapter.Database)
	}
	return repo.NewRecordRepository(log, cache, matches, cfg.RecordCacheTTL)
}

func (d *dataBaseAdapters) matchStore(log *zap.SugaredLogger) archive.MatchStore {
	if d.mongoAdapter == nil {
		return nil
	}
	return repo.NewMongoMatchArchive(log, d.mongoAdapter.Database)
}

func initializeDeliveryHandlers(
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	analyzer gameuc.Analyzer,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	viewerUC := gameuc.NewViewerUseCase(databaseAdapters.recordRepository(cfg, log), cfg.StrictRules,
		gameuc.WithMaxViewers(cfg.MaxViewers))
	analysisUC := gameuc.NewAnalysisUseCase(analyzer)
	archiveUC := archive.NewArchiveUseCase(databaseAdapters.matchStore(log), log, cfg.PageLimitMatches)

	return &mainDeliveryHandler{
		viewer:  viewerDelivery.NewViewerHandler(log, viewerUC, analysisUC),
		archive: archiveDelivery.NewArchiveHandler(log, archiveUC),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, server *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
