package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fwtracker/backend/internal/database"
	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
	"github.com/fwtracker/backend/internal/server"
	"github.com/fwtracker/backend/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, log *slog.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server gets 5 seconds to finish in-flight requests.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			log.Error("closing database connection pool", "err", err)
		}
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dbService := database.New()
	gormDB := dbService.GetDB()

	if err := gormDB.AutoMigrate(domain.AllModels()...); err != nil {
		log.Error("database auto-migration failed", "err", err)
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository(gormDB)
	listRepo := repository.NewGormListRepository(gormDB)
	itemRepo := repository.NewGormItemRepository(gormDB)
	tagRepo := repository.NewGormTagRepository(gormDB)
	commentRepo := repository.NewGormCommentRepository(gormDB)
	templateRepo := repository.NewGormTemplateRepository(gormDB)
	frameworkRepo := repository.NewGormFrameworkRepository(gormDB)
	statsRepo := repository.NewGormStatsRepository(gormDB)

	if err := userRepo.DeleteExpiredSessions(context.Background(), time.Now()); err != nil {
		log.Warn("sweeping expired sessions", "err", err)
	}
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := userRepo.DeleteExpiredSessions(context.Background(), time.Now()); err != nil {
				log.Warn("sweeping expired sessions", "err", err)
			}
		}
	}()

	services := server.Services{
		Auth:       service.NewAuthService(userRepo, server.SessionTTL()),
		Lists:      service.NewListService(listRepo, frameworkRepo),
		Items:      service.NewItemService(itemRepo, listRepo),
		Tags:       service.NewTagService(tagRepo, itemRepo, listRepo),
		Comments:   service.NewCommentService(commentRepo, itemRepo, listRepo),
		Shares:     service.NewShareService(listRepo, userRepo),
		Frameworks: service.NewFrameworkService(frameworkRepo, listRepo, itemRepo),
		Templates:  service.NewTemplateService(templateRepo, listRepo, itemRepo),
		Transfers:  service.NewTransferService(listRepo, itemRepo, frameworkRepo),
		Dashboard:  service.NewDashboardService(statsRepo),
	}

	apiServer := server.NewServer(services, dbService, log)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, log, done)

	log.Info("starting server", "addr", apiServer.Addr, "backend", dbService.Backend())
	err := apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server error", "err", err)
		os.Exit(1)
	}

	<-done
	log.Info("graceful shutdown complete")
}
