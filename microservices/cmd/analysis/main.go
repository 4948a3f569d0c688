package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/bootstrap"
	analysisRPC "github.com/sadok-lajmi/TenukiGo-2025/microservices/proto"
	"github.com/sadok-lajmi/TenukiGo-2025/microservices/repository"
	"github.com/sadok-lajmi/TenukiGo-2025/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}
	if cfg.KatagoUrl == "" {
		logger.Fatal("KATAGO_URL is required")
	}

	lis, err := net.Listen("tcp", cfg.AnalysisPort)
	if err != nil {
		logger.Fatal("can't listen port", zap.Error(err))
	}

	server := grpc.NewServer()
	katagoStorage := repository.NewKatagoRepository(cfg.KatagoUrl, logger)
	analysisRPC.RegisterAnalysisServiceServer(server, usecase.NewAnalysisUseCase(katagoStorage, logger, cfg.AnalysisMaxVisits))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("starting analysis server at %s", cfg.AnalysisPort)
	if err := server.Serve(lis); err != nil {
		logger.Fatal("analysis server stopped", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
