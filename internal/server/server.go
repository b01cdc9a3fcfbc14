package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fwtracker/backend/internal/database"
	"github.com/fwtracker/backend/internal/service"
)

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Auth       service.AuthService
	Lists      service.ListService
	Items      service.ItemService
	Tags       service.TagService
	Comments   service.CommentService
	Shares     service.ShareService
	Frameworks service.FrameworkService
	Templates  service.TemplateService
	Transfers  service.TransferService
	Dashboard  service.DashboardService
}

type Server struct {
	port int
	log  *slog.Logger
	db   database.Service
	svc  Services

	// fixed-window rate buckets for the auth endpoints
	rlMu sync.Mutex
	rl   map[string]*rateBucket
}

// NewServer builds the HTTP server around the registered routes.
func NewServer(svc Services, dbService database.Service, log *slog.Logger) *http.Server {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn("invalid PORT, using default 8080", "port", portStr, "err", err)
		port = 8080
	}

	appServer := &Server{
		port: port,
		log:  log,
		db:   dbService,
		svc:  svc,
		rl:   map[string]*rateBucket{},
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

// SessionTTL reads the configured session lifetime, defaulting to 30 days.
func SessionTTL() time.Duration {
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 30 * 24 * time.Hour
}
