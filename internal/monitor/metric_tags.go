package monitor

type MetricTag string

const (
	HttpRequestDurationTag MetricTag = "requests_duration_seconds"
	// Prober:
	ProbeAttemptsCounterTag MetricTag = "probe_attempts_total"
	ProbeAttemptDurationTag MetricTag = "probe_attempt_duration_seconds"
	// Stub reset-pin server:
	ResetPinAttemptsCounterTag MetricTag = "reset_pin_attempts_total"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HttpRequestDurationTag,
		ProbeAttemptsCounterTag,
		ProbeAttemptDurationTag,
		ResetPinAttemptsCounterTag,
	}
}
