package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dashdrop/internal/auth-service/adapters/driven/cache"
	"dashdrop/internal/auth-service/adapters/driven/db"
	"dashdrop/internal/auth-service/adapters/driven/notify"
	"dashdrop/internal/auth-service/adapters/driver/myhttp/handle"
	"dashdrop/internal/auth-service/core/services"
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
	otp    *cache.OtpStore
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

	otpStore, err := cache.NewOtpStore(s.ctx, s.cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.otp = otpStore
	mylog.Info("Successful redis connection")

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AuthServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AuthServicePort)

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

	if s.otp != nil {
		if err := s.otp.Close(); err != nil {
			s.mylog.Error("Failed to close redis client", err)
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

// Configure wires the auth repo, otp store, services and public routes.
func (s *Server) Configure() {
	authRepo := db.NewAuthRepo(s.db)
	sms := notify.NewSmsNotifier(s.mylog)

	authService := services.NewAuthService(authRepo, s.cfg.App.JwtSecret, s.mylog)
	otpService := services.NewOtpService(authRepo, s.otp, sms, s.mylog)

	authHandler := handle.NewAuthHandler(authService, otpService, s.mylog)

	s.mux.Handle("POST /drivers", authHandler.RegisterDriver())
	s.mux.Handle("POST /auth/login", authHandler.Login())
	s.mux.Handle("POST /auth/otp/request", authHandler.IssueOtp())
	s.mux.Handle("POST /auth/otp/verify", authHandler.ConfirmOtp())
}
