package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "otp_prober"

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	HttpRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: metricsNamespace, Subsystem: "http", Name: string(HttpRequestDurationTag),
		Help: "HTTP requests durations, sliding window = 10m",
	},
		[]string{"status", "route", "method"},
	),
	ProbeAttemptDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: metricsNamespace, Name: string(ProbeAttemptDurationTag),
		Help: "Round-trip duration of each OTP attempt sent by the prober",
	},
		[]string{"outcome"},
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	ProbeAttemptsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace, Name: string(ProbeAttemptsCounterTag),
		Help: "OTP attempts sent by the prober",
	},
		[]string{"outcome"},
	),
	ResetPinAttemptsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace, Name: string(ResetPinAttemptsCounterTag),
		Help: "Reset-pin requests received by the stub server",
	},
		[]string{"result"},
	),
}
