package serve

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/otp-prober/internal/crashtracker"
	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/serve/httperror"
	"github.com/stellar/otp-prober/internal/serve/httphandler"
	"github.com/stellar/otp-prober/internal/serve/middleware"
	"github.com/stellar/otp-prober/internal/serve/otpstore"
)

const ServiceID = "stub-server"

type HTTPServerInterface interface {
	Run(conf supporthttp.Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf supporthttp.Config) {
	supporthttp.Run(conf)
}

// StubServeOptions configure the local reset-pin target.
type StubServeOptions struct {
	Environment            string
	GitCommit              string
	Version                string
	Port                   int
	Username               string
	OTP                    string
	RateLimit              int
	RateLimitWindowSeconds int
	CorsAllowedOrigins     []string
	MonitorService         monitor.MonitorServiceInterface
	CrashTrackerClient     crashtracker.CrashTrackerClient

	// GenerateOTP defaults to otpstore.RandomOTP.
	GenerateOTP func() (string, error)
	store       *otpstore.Store
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *StubServeOptions) SetupDependencies() error {
	if opts.CrashTrackerClient != nil {
		httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)
	}

	if opts.GenerateOTP == nil {
		opts.GenerateOTP = otpstore.RandomOTP
	}

	store, err := otpstore.NewStore(otpstore.DefaultSize)
	if err != nil {
		return fmt.Errorf("creating otp store: %w", err)
	}
	opts.store = store

	if opts.Username == "" {
		return nil
	}

	otp := opts.OTP
	if otp == "" {
		otp, err = opts.GenerateOTP()
		if err != nil {
			return fmt.Errorf("generating initial otp: %w", err)
		}
	}
	store.AddAccount(opts.Username, otp)
	log.Debugf("Initial OTP for user %q is %s", opts.Username, otp)

	return nil
}

// Serve starts the stub reset-pin server and blocks until it is stopped.
func Serve(opts StubServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("error starting dependencies: %w", err)
	}

	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := supporthttp.Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: time.Second * 10,
		ReadTimeout:         time.Second * 5,
		WriteTimeout:        time.Second * 35,
		IdleTimeout:         time.Minute * 2,
		OnStarting: func() {
			log.Info("Starting OTP stub server")
			log.Infof("Listening on %s", listenAddr)
		},
		OnStopping: func() {
			if opts.CrashTrackerClient != nil {
				opts.CrashTrackerClient.FlushEvents(2 * time.Second)
			}
			log.Info("Stopping OTP stub server")
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o StubServeOptions) *chi.Mux {
	mux := chi.NewMux()

	mux.Use(middleware.CorsMiddleware(o.CorsAllowedOrigins))
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	if o.MonitorService != nil {
		mux.Use(middleware.MetricsRequestHandler(o.MonitorService))
	}

	mux.Get("/health", httphandler.HealthHandler{
		Version:   o.Version,
		ServiceID: ServiceID,
		ReleaseID: o.GitCommit,
	}.ServeHTTP)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/generate-otp/{username}", httphandler.GenerateOTPHandler{
			Store:       o.store,
			GenerateOTP: o.GenerateOTP,
		}.ServeHTTP)

		rateLimitWindow := time.Duration(o.RateLimitWindowSeconds) * time.Second
		r.With(middleware.RateLimitMiddleware(o.RateLimit, rateLimitWindow)).
			Post("/reset-pin/{username}", httphandler.ResetPinHandler{
				Store:          o.store,
				MonitorService: o.MonitorService,
			}.ServeHTTP)
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperror.NotFound("", nil).Render(w)
	})

	return mux
}
