package monitor

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotStarted is returned when metrics are recorded before Start.
	ErrNotStarted = errors.New("monitor client was not started")
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("monitor client already started")
)

// MonitorServiceInterface is what the prober and the stub server record their metrics through.
//
//go:generate mockery --name=MonitorServiceInterface --case=underscore --structname=MockMonitorService
type MonitorServiceInterface interface {
	Start(opts MetricOptions) error
	GetMetricType() (MetricType, error)
	GetMetricHttpHandler() (http.Handler, error)
	MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels) error
	MonitorCounters(tag MetricTag, labels map[string]string) error
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error
}

var _ MonitorServiceInterface = (*MonitorService)(nil)

// MonitorService is unusable until Start picks the metrics backend. Commands that never
// expose metrics leave it unstarted.
type MonitorService struct {
	MonitorClient MonitorClient
}

func (m *MonitorService) Start(opts MetricOptions) error {
	if m.MonitorClient != nil {
		return ErrAlreadyStarted
	}

	monitorClient, err := GetClient(opts)
	if err != nil {
		return fmt.Errorf("error creating monitor client: %w", err)
	}
	m.MonitorClient = monitorClient

	return nil
}

func (m *MonitorService) client() (MonitorClient, error) {
	if m.MonitorClient == nil {
		return nil, ErrNotStarted
	}
	return m.MonitorClient, nil
}

func (m *MonitorService) GetMetricType() (MetricType, error) {
	c, err := m.client()
	if err != nil {
		return "", err
	}
	return c.GetMetricType(), nil
}

// GetMetricHttpHandler returns the handler mounted at /metrics.
func (m *MonitorService) GetMetricHttpHandler() (http.Handler, error) {
	c, err := m.client()
	if err != nil {
		return nil, err
	}
	return c.GetMetricHttpHandler(), nil
}

func (m *MonitorService) MonitorHttpRequestDuration(duration time.Duration, labels HttpRequestLabels) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	c.MonitorHttpRequestDuration(duration, labels)
	return nil
}

// MonitorDuration records a probe attempt duration or any other histogram tag.
func (m *MonitorService) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	c.MonitorDuration(duration, tag, labels)
	return nil
}

// MonitorCounters increments the counter for tag, e.g. probe attempts by outcome.
func (m *MonitorService) MonitorCounters(tag MetricTag, labels map[string]string) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	c.MonitorCounters(tag, labels)
	return nil
}
