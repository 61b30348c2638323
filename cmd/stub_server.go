package cmd

import (
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/stellar/otp-prober/cmd/utils"
	"github.com/stellar/otp-prober/internal/crashtracker"
	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/serve"
)

type StubServerCommand struct{}

type ServerServiceInterface interface {
	StartServe(opts serve.StubServeOptions, httpServer serve.HTTPServerInterface)
	StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface)
}

type ServerService struct {
	metricsServer
}

var _ ServerServiceInterface = (*ServerService)(nil)

func (s *ServerService) StartServe(opts serve.StubServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.Serve(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting server: %s", err.Error())
	}
}

func (c *StubServerCommand) Command(serverService ServerServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	serveOpts := serve.StubServeOptions{}
	metricsServeOpts := serve.MetricsServeOptions{}

	configOpts := config.ConfigOptions{
		{
			Name:        "port",
			Usage:       "Port where the stub reset-pin server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.Port,
			FlagDefault: 3000,
			Required:    true,
		},
		{
			Name:        "metrics-port",
			Usage:       "Port where the metrics server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &metricsServeOpts.Port,
			FlagDefault: 3002,
			Required:    true,
		},
		{
			Name:           "metrics-type",
			Usage:          `Metric monitor type. Options: "PROMETHEUS"`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionMetricType,
			ConfigKey:      &metricsServeOpts.MetricType,
			FlagDefault:    string(monitor.MetricTypePrometheus),
			Required:       true,
		},
		{
			Name:        "username",
			EnvVar:      "STUB_USERNAME",
			Usage:       "User whose OTP is set when the server starts",
			OptType:     types.String,
			ConfigKey:   &serveOpts.Username,
			FlagDefault: "test",
			Required:    true,
		},
		{
			Name:           "otp",
			Usage:          "Initial OTP of the user, up to 4 digits. A random one is generated when empty",
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetConfigOptionOTP,
			ConfigKey:      &serveOpts.OTP,
			Required:       false,
		},
		{
			Name:        "rate-limit",
			Usage:       "Reset-pin requests allowed per client IP in each rate limit window. 0 disables the limiter",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.RateLimit,
			FlagDefault: 5,
			Required:    true,
		},
		{
			Name:        "rate-limit-window-seconds",
			Usage:       "Length of the rate limit window, in seconds",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.RateLimitWindowSeconds,
			FlagDefault: 60,
			Required:    true,
		},
		{
			Name:           "cors-allowed-origins",
			Usage:          `Cors URLs that are allowed to access the endpoints, separated by ","`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetCorsAllowedOrigins,
			ConfigKey:      &serveOpts.CorsAllowedOrigins,
			FlagDefault:    "*",
			Required:       true,
		},
	}

	stubServerCmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Serve a local reset-pin endpoint to probe against",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.PropagatePersistentPreRun(cmd, args)

			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Ctx(cmd.Context()).Fatalf("Error setting values of config options: %s", err.Error())
			}

			metricOptions := monitor.MetricOptions{
				MetricType:  metricsServeOpts.MetricType,
				Environment: globalOptions.Environment,
			}
			err = monitorService.Start(metricOptions)
			if err != nil {
				log.Ctx(cmd.Context()).Fatalf("Error creating monitor service: %s", err.Error())
			}

			serveOpts.Environment = globalOptions.Environment
			serveOpts.GitCommit = globalOptions.GitCommit
			serveOpts.Version = globalOptions.Version
			serveOpts.MonitorService = monitorService

			metricsServeOpts.MonitorService = monitorService
			metricsServeOpts.Environment = globalOptions.Environment
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			crashTrackerClient, err := crashtracker.GetClient(ctx, globalOptions.CrashTrackerOptions())
			if err != nil {
				log.Ctx(ctx).Fatalf("Error creating crash tracker client: %s", err.Error())
			}
			serveOpts.CrashTrackerClient = crashTrackerClient

			log.Ctx(ctx).Info("Starting Metrics Server...")
			go serverService.StartMetricsServe(metricsServeOpts, &serve.HTTPServer{})

			log.Ctx(ctx).Info("Starting Stub Server...")
			serverService.StartServe(serveOpts, &serve.HTTPServer{})
		},
	}

	err := configOpts.Init(stubServerCmd)
	if err != nil {
		log.Ctx(stubServerCmd.Context()).Fatalf("Error initializing stubServerCmd config option: %s", err.Error())
	}

	return stubServerCmd
}
