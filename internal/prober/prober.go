package prober

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/otp-prober/internal/monitor"
	"github.com/stellar/otp-prober/internal/serve/httpclient"
)

const (
	DefaultTargetURL = "http://localhost:3000/api/reset-pin/test"
	DefaultPassword  = "password"

	// MatchStatusCode is the only status accepted as a correct OTP. Other 2xx codes are misses.
	MatchStatusCode = http.StatusCreated
)

const (
	outcomeMatch = "match"
	outcomeMiss  = "miss"
)

// ResetPinRequest is the JSON body sent for every candidate.
type ResetPinRequest struct {
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type ProberOptions struct {
	HTTPClient httpclient.HTTPClientInterface
	TargetURL  string
	Password   string
	// Output receives every response body and, on a match, the matching candidate.
	Output io.Writer
	// MonitorService is optional.
	MonitorService monitor.MonitorServiceInterface
}

// Prober sends candidates one at a time to a reset-pin endpoint.
type Prober struct {
	httpClient     httpclient.HTTPClientInterface
	targetURL      string
	password       string
	output         io.Writer
	monitorService monitor.MonitorServiceInterface
}

type ScanResult struct {
	ScanID   string
	Found    bool
	OTP      Candidate
	Attempts int
	Duration time.Duration
}

func NewProber(opts ProberOptions) (*Prober, error) {
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}
	if opts.TargetURL == "" {
		return nil, fmt.Errorf("target url cannot be empty")
	}
	u, err := url.ParseRequestURI(opts.TargetURL)
	if err != nil {
		return nil, fmt.Errorf("parsing target url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("target url scheme must be http or https, got %q", u.Scheme)
	}
	if opts.Output == nil {
		return nil, fmt.Errorf("output cannot be nil")
	}

	return &Prober{
		httpClient:     opts.HTTPClient,
		targetURL:      opts.TargetURL,
		password:       opts.Password,
		output:         opts.Output,
		monitorService: opts.MonitorService,
	}, nil
}

// Attempt sends a single candidate and reports whether the endpoint answered 201 Created.
// Transport and read failures are returned as errors; any other status is a miss.
func (p *Prober) Attempt(ctx context.Context, candidate Candidate) (bool, error) {
	statusCode, err := p.attempt(ctx, candidate)
	if err != nil {
		return false, err
	}
	return statusCode == MatchStatusCode, nil
}

// Scan walks the range in increasing order and stops at the first match. The
// first error aborts the scan; the returned result still counts the attempts made.
func (p *Prober) Scan(ctx context.Context, candidateRange CandidateRange) (*ScanResult, error) {
	if err := candidateRange.Validate(); err != nil {
		return nil, fmt.Errorf("validating candidate range: %w", err)
	}

	result := &ScanResult{ScanID: uuid.NewString()}
	ctx = log.Set(ctx, log.Ctx(ctx).WithFields(log.F{
		"scan_id":    result.ScanID,
		"target_url": p.targetURL,
	}))

	started := time.Now()
	defer func() {
		result.Duration = time.Since(started)
	}()

	log.Ctx(ctx).Infof("Scanning %d candidates in %s", candidateRange.Len(), candidateRange)
	total := candidateRange.Len()
	for candidate := range candidateRange.All() {
		result.Attempts++
		statusCode, err := p.attempt(ctx, candidate)
		if err != nil {
			return result, fmt.Errorf("attempting candidate %s: %w", candidate, err)
		}
		log.Ctx(ctx).Debugf("attempt %d/%d otp=%s status=%d", result.Attempts, total, candidate, statusCode)

		if statusCode == MatchStatusCode {
			result.Found = true
			result.OTP = candidate
			if _, err = fmt.Fprintln(p.output, candidate); err != nil {
				return result, fmt.Errorf("writing matched candidate: %w", err)
			}
			break
		}
	}

	log.Ctx(ctx).Infof("Scan finished: attempts=%d found=%t duration=%s", result.Attempts, result.Found, time.Since(started))
	return result, nil
}

// attempt posts the candidate, prints the response body and returns the status code.
func (p *Prober) attempt(ctx context.Context, candidate Candidate) (int, error) {
	reqBody, err := json.Marshal(ResetPinRequest{
		OTP:      candidate.String(),
		Password: p.password,
	})
	if err != nil {
		return 0, fmt.Errorf("marshalling reset pin request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, p.targetURL, bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	then := time.Now()
	response, err := p.httpClient.Do(request)
	if err != nil {
		return 0, fmt.Errorf("posting candidate %s: %w", candidate, err)
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response body for candidate %s: %w", candidate, err)
	}
	p.monitorAttempt(ctx, time.Since(then), response.StatusCode == MatchStatusCode)

	if _, err = fmt.Fprintln(p.output, string(respBody)); err != nil {
		return 0, fmt.Errorf("writing response body: %w", err)
	}

	return response.StatusCode, nil
}

func (p *Prober) monitorAttempt(ctx context.Context, duration time.Duration, match bool) {
	if p.monitorService == nil {
		return
	}

	labels := monitor.ProbeAttemptLabels{Outcome: outcomeMiss}
	if match {
		labels.Outcome = outcomeMatch
	}
	if err := p.monitorService.MonitorCounters(monitor.ProbeAttemptsCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor probe attempt counter: %s", err)
	}
	if err := p.monitorService.MonitorDuration(duration, monitor.ProbeAttemptDurationTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("Error trying to monitor probe attempt duration: %s", err)
	}
}
