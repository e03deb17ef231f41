package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dashdrop/internal/config"
	"dashdrop/internal/driver-service/adapters/driven/bm"
	"dashdrop/internal/driver-service/adapters/driven/consume"
	"dashdrop/internal/driver-service/adapters/driven/db"
	"dashdrop/internal/driver-service/adapters/driven/filestore"
	"dashdrop/internal/driver-service/adapters/driver/myhttp/handle"
	"dashdrop/internal/driver-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/driver-service/adapters/driver/myhttp/ws"
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/driver-service/core/services"
	"dashdrop/internal/mylogger"

	"github.com/go-co-op/gocron/v2"
)

const WaitTime = 10

type Server struct {
	mux       *http.ServeMux
	cfg       *config.Config
	srv       *http.Server
	mylog     mylogger.Logger
	db        *db.DataBase
	mb        driven.IOrderEventsBroker
	scheduler gocron.Scheduler
	ctx       context.Context
	appCtx    context.Context
	mu        sync.Mutex
	wg        sync.WaitGroup
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

// Run initializes the adapters, routes and background jobs, then listens.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.ConnectDB(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.DriverServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.DriverServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			s.mylog.Error("Failed to shut down job scheduler", err)
		}
	}

	s.wg.Wait()

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
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

// Configure wires repositories, services, the realtime hub, the broker relay
// and the daily reset job.
func (s *Server) Configure() error {
	driverRepo := db.NewDriverRepository(s.db)

	files, err := filestore.NewLocalStore(s.cfg.App.DocumentDir)
	if err != nil {
		return err
	}

	svc := services.New(driverRepo, files, s.mylog)

	hub := ws.NewHub(svc.DriverService, s.mylog)

	relay := consume.New(s.appCtx, &s.wg, s.mylog, s.mb, hub)
	if err := relay.Run(); err != nil {
		return fmt.Errorf("cannot start order status relay: %w", err)
	}

	if err := s.scheduleDailyReset(driverRepo); err != nil {
		return err
	}

	driverHandler := handle.NewDriverHandler(svc.DriverService, svc.VerificationService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	s.mux.Handle("GET /drivers/{driver_id}", authMiddleware.Wrap(driverHandler.GetDriver()))
	s.mux.Handle("PUT /drivers/{driver_id}", authMiddleware.Wrap(driverHandler.UpdateProfile()))
	s.mux.Handle("PUT /drivers/{driver_id}/documents", authMiddleware.Wrap(driverHandler.SubmitDocuments()))
	s.mux.Handle("PUT /drivers/{driver_id}/location", authMiddleware.Wrap(driverHandler.UpdateLocation()))
	s.mux.Handle("PUT /drivers/{driver_id}/availability", authMiddleware.Wrap(driverHandler.UpdateAvailability()))

	s.mux.Handle("/ws", hub.WsHandler())

	return nil
}

// scheduleDailyReset zeroes every driver's today_earnings at midnight. The
// accumulator has no other reset path.
func (s *Server) scheduleDailyReset(driverRepo *db.DriverRepository) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("cannot create job scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			log := s.mylog.Action("resetTodayEarnings")
			ctx, cancel := context.WithTimeout(s.appCtx, time.Minute)
			defer cancel()
			n, err := driverRepo.ResetTodayEarnings(ctx)
			if err != nil {
				log.Error("cannot reset today earnings", err)
				return
			}
			log.Info("today earnings reset", "drivers", n)
		}),
	)
	if err != nil {
		return fmt.Errorf("cannot schedule daily reset: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	return nil
}
