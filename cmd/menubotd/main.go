package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tezkor/menu-tracker/internal/common"
	"github.com/tezkor/menu-tracker/internal/dictionary"
	"github.com/tezkor/menu-tracker/internal/export"
	"github.com/tezkor/menu-tracker/internal/extractor"
	"github.com/tezkor/menu-tracker/internal/session"
)

// logPresenter writes operator-facing output to the structured log. The chat
// transport plugs in here; until one is attached the daemon stays observable.
type logPresenter struct {
	logger *slog.Logger
}

func (p *logPresenter) Notice(_ context.Context, userID int64, text string) error {
	p.logger.Info("present.notice", "user_id", userID, "text", text)
	return nil
}

func (p *logPresenter) ShowCard(_ context.Context, userID int64, card session.Card) error {
	fileID := ""
	if card.Photo != nil {
		fileID = card.Photo.FileID
	}
	p.logger.Info("present.card",
		"user_id", userID, "caption", card.Caption,
		"photo", fileID, "reply_to", card.ReplyToMessageID,
	)
	return nil
}

// fileIDResolver maps photo references onto a static URL prefix. A transport
// that holds real file storage replaces this.
type fileIDResolver struct {
	baseURL string
}

func (r *fileIDResolver) ResolveURL(_ context.Context, ref session.PhotoRef) (string, error) {
	return r.baseURL + "/" + ref.FileID, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dict, err := dictionary.Load(cfg.Dictionary.Path)
	if err != nil {
		logger.Error("loading dictionary", "path", cfg.Dictionary.Path, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore()
	engine := session.NewEngine(
		store,
		extractor.New(dict, logger),
		&logPresenter{logger: logger},
		&fileIDResolver{baseURL: cfg.Photo.BaseURL},
		export.NewXLSXWriter(cfg.Export.Dir, logger),
		logger,
	)
	dispatcher := session.NewDispatcher(engine, logger,
		session.WithQueueSize(cfg.Dispatch.QueueSize),
		session.WithIdleTTL(cfg.Dispatch.IdleTTL),
	)

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("gRPC serving", "addr", cfg.Server.GRPCAddr)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	dispatcher.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	fmt.Println("stopped.")
}
