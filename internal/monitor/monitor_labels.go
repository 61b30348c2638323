package monitor

type HttpRequestLabels struct {
	Status string
	Route  string
	Method string
}

// ProbeAttemptLabels describe the outcome of one prober attempt: "match" or "miss".
type ProbeAttemptLabels struct {
	Outcome string
}

func (p ProbeAttemptLabels) ToMap() map[string]string {
	return map[string]string{
		"outcome": p.Outcome,
	}
}

// ResetPinLabels describe how the stub server answered a reset-pin request.
type ResetPinLabels struct {
	Result string
}

func (r ResetPinLabels) ToMap() map[string]string {
	return map[string]string{
		"result": r.Result,
	}
}
