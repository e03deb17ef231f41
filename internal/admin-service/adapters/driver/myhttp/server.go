package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dashdrop/internal/admin-service/adapters/driven/db"
	"dashdrop/internal/admin-service/adapters/driven/notify"
	"dashdrop/internal/admin-service/adapters/driver/myhttp/handle"
	"dashdrop/internal/admin-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/admin-service/core/services"
	"dashdrop/internal/config"
	"dashdrop/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DataBase
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	s := &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}

	return s
}

func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.ConnectDB(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AdminServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AdminServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires the verification repo, notifier, service and admin routes.
func (s *Server) Configure() {
	repo := db.NewVerificationRepo(s.db)
	notifier := notify.NewEmailNotifier(s.mylog)

	svc := services.NewVerificationService(repo, notifier, s.mylog)

	verificationHandler := handle.NewVerificationHandler(svc, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	s.mux.Handle("GET /admin/drivers/pending", authMiddleware.WrapAdmin(verificationHandler.ListPending()))
	s.mux.Handle("GET /admin/drivers/{driver_id}", authMiddleware.WrapAdmin(verificationHandler.GetDriver()))
	s.mux.Handle("PUT /admin/drivers/{driver_id}/verification", authMiddleware.WrapAdmin(verificationHandler.Decide()))
	s.mux.Handle("POST /admin/drivers/{driver_id}/verification/reconsider", authMiddleware.WrapAdmin(verificationHandler.Reconsider()))
	s.mux.Handle("DELETE /admin/drivers/{driver_id}", authMiddleware.WrapAdmin(verificationHandler.DeleteDriver()))
}
