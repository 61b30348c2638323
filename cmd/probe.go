package cmd

import (
	"context"
	"fmt"
	"go/types"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/stellar/otp-prober/cmd/utils"
	"github.com/stellar/otp-prober/internal/crashtracker"
	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/prober"
	"github.com/stellar/otp-prober/internal/serve"
	"github.com/stellar/otp-prober/internal/serve/httpclient"
)

type ProbeCommand struct{}

type ProbeServiceInterface interface {
	Probe(ctx context.Context, opts prober.ProberOptions, candidateRange prober.CandidateRange) (*prober.ScanResult, error)
	StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface)
}

// metricsServer is shared by the command services that expose /metrics.
type metricsServer struct{}

func (metricsServer) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.MetricsServe(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting metrics server: %s", err.Error())
	}
}

type ProbeService struct {
	metricsServer
}

var _ ProbeServiceInterface = (*ProbeService)(nil)

// StartMetricsServe logs setup failures instead of exiting so the scan keeps going without metrics.
func (s *ProbeService) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	if err := serve.MetricsServe(opts, httpServer); err != nil {
		log.Errorf("Error starting probe metrics server, continuing without it: %s", err.Error())
	}
}

func (s *ProbeService) Probe(ctx context.Context, opts prober.ProberOptions, candidateRange prober.CandidateRange) (*prober.ScanResult, error) {
	p, err := prober.NewProber(opts)
	if err != nil {
		return nil, fmt.Errorf("creating prober: %w", err)
	}

	return p.Scan(ctx, candidateRange)
}

func (c *ProbeCommand) Command(probeService ProbeServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	proberOpts := prober.ProberOptions{}
	metricsServeOpts := serve.MetricsServeOptions{}

	configOpts := config.ConfigOptions{
		{
			Name:           "target-url",
			Usage:          "The reset-pin endpoint the candidates are posted to.",
			OptType:        types.String,
			FlagDefault:    prober.DefaultTargetURL,
			ConfigKey:      &proberOpts.TargetURL,
			CustomSetValue: cmdUtils.SetConfigOptionURLString,
			Required:       true,
		},
		{
			Name:        "password",
			Usage:       "The password value sent along with every candidate.",
			OptType:     types.String,
			FlagDefault: prober.DefaultPassword,
			ConfigKey:   &proberOpts.Password,
			Required:    true,
		},
		{
			Name:        "probe-metrics-port",
			Usage:       "Port for a /metrics endpoint that only lives while the scan runs and goes away when the command exits. Meant for debugging, not for scraping. 0 disables it.",
			OptType:     types.Int,
			FlagDefault: 0,
			ConfigKey:   &metricsServeOpts.Port,
			Required:    false,
		},
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Walk the OTP range against a reset-pin endpoint and print the first accepted OTP",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.PropagatePersistentPreRun(cmd, args)

			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Ctx(cmd.Context()).Fatalf("Error setting values of config options: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			crashTrackerClient, err := crashtracker.GetClient(ctx, globalOptions.CrashTrackerOptions())
			if err != nil {
				log.Ctx(ctx).Fatalf("Error creating crash tracker client: %s", err.Error())
			}

			if metricsServeOpts.Port > 0 {
				metricOptions := monitor.MetricOptions{
					MetricType:  monitor.MetricTypePrometheus,
					Environment: globalOptions.Environment,
				}
				if err = monitorService.Start(metricOptions); err != nil {
					log.Ctx(ctx).Fatalf("Error creating monitor service: %s", err.Error())
				}
				metricsServeOpts.MetricType = monitor.MetricTypePrometheus
				metricsServeOpts.Environment = globalOptions.Environment
				metricsServeOpts.MonitorService = monitorService
				proberOpts.MonitorService = monitorService

				go probeService.StartMetricsServe(metricsServeOpts, &serve.HTTPServer{})
			}

			proberOpts.HTTPClient = httpclient.DefaultClient()
			proberOpts.Output = cmd.OutOrStdout()

			result, err := probeService.Probe(ctx, proberOpts, prober.DefaultCandidateRange)
			if err != nil {
				crashTrackerClient.LogAndReportErrors(ctx, err, "probe aborted")
				crashTrackerClient.FlushEvents(2 * time.Second)
				log.Ctx(ctx).Fatalf("Error probing %s: %s", proberOpts.TargetURL, err.Error())
			}

			if !result.Found {
				log.Ctx(ctx).Infof("No OTP in %s was accepted by %s", prober.DefaultCandidateRange, proberOpts.TargetURL)
			}
		},
	}

	err := configOpts.Init(probeCmd)
	if err != nil {
		log.Ctx(probeCmd.Context()).Fatalf("Error initializing probeCmd config option: %s", err.Error())
	}

	return probeCmd
}
