package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/catalog"
	"github.com/drstein77/quotedesk/internal/config"
	"github.com/drstein77/quotedesk/internal/controllers"
	"github.com/drstein77/quotedesk/internal/dbkeeper"
	"github.com/drstein77/quotedesk/internal/logger"
	"github.com/drstein77/quotedesk/internal/middleware"
	"github.com/drstein77/quotedesk/internal/quote"
	"github.com/drstein77/quotedesk/internal/storage"
)

const sweepInterval = 10 * time.Minute

type Server struct {
	srv     *http.Server
	ctx     context.Context
	storage *storage.MemoryStorage

	Log *logger.Logger
}

// NewServer reads the options and wires catalog, storage, quote service
// and router.
func NewServer(ctx context.Context) (*Server, error) {
	// create and initialize a new option instance
	option := config.NewOptions()
	option.ParseFlags()

	return newServer(ctx, option)
}

func newServer(ctx context.Context, option *config.Options) (*Server, error) {
	// get a new logger
	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(option.CatalogFile(), nLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var keeper storage.Keeper
	if option.DataBaseDSN() != "" {
		kp := dbkeeper.NewDBKeeper(ctx, option.DataBaseDSN, option.MigrationsDir, nLogger)
		if kp == nil {
			return nil, errors.New("failed to initialise database")
		}
		keeper = kp
	}

	store := storage.NewMemoryStorage(keeper, option.SessionTTL(), nLogger)
	quotes := quote.NewService(store, nLogger.With(zap.String("component", "quote")))
	basecontr := controllers.NewBaseController(cat, store, quotes, option.SessionTTL(), nLogger)

	// create router and mount routes
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(nLogger))
	r.Mount("/", basecontr.Route())

	return &Server{
		srv: &http.Server{
			Addr:              option.RunAddr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ctx:     ctx,
		storage: store,
		Log:     nLogger,
	}, nil
}

// Serve runs the HTTP server and the session sweeper until Shutdown.
func (server *Server) Serve() {
	go server.storage.RunSweeper(server.ctx, sweepInterval)

	server.Log.Info("Server started", zap.String("addr", server.srv.Addr))
	if err := server.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		server.Log.Error("Server stopped", zap.Error(err))
	}
}

// Shutdown stops accepting requests, waits up to timeout for the running
// ones and closes the database pool.
func (server *Server) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.srv.Shutdown(ctx); err != nil {
		server.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
	server.storage.Close()
	server.Log.Info("Server stopped gracefully")
	server.Log.Sync()
}
