package serve

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stellar/otp-prober/internal/monitor"
)

func Test_MetricsServe(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mMonitorService.On("GetMetricHttpHandler").
		Return(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		}), nil).
		Once()

	opts := MetricsServeOptions{
		Port:           3002,
		MetricType:     monitor.MetricTypePrometheus,
		MonitorService: mMonitorService,
	}

	mHTTPServer := mockHTTPServer{}
	mHTTPServer.On("Run", mock.AnythingOfType("http.Config")).Run(func(args mock.Arguments) {
		conf, ok := args.Get(0).(supporthttp.Config)
		require.True(t, ok, "should be of type supporthttp.Config")
		assert.Equal(t, ":3002", conf.ListenAddr)
		assert.Equal(t, time.Second*5, conf.ReadTimeout)
		assert.Equal(t, time.Second*10, conf.WriteTimeout)
		assert.Equal(t, time.Minute*2, conf.IdleTimeout)
		assert.Nil(t, conf.TLS)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rr := httptest.NewRecorder()
		conf.Handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}).Once()

	err := MetricsServe(opts, &mHTTPServer)
	require.NoError(t, err)
	mHTTPServer.AssertExpectations(t)
	mMonitorService.AssertExpectations(t)
}

func Test_MetricsServe_handlerError(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mMonitorService.On("GetMetricHttpHandler").
		Return(nil, monitor.ErrNotStarted).
		Once()

	mHTTPServer := mockHTTPServer{}
	err := MetricsServe(MetricsServeOptions{Port: 3002, MonitorService: mMonitorService}, &mHTTPServer)
	require.EqualError(t, err, "setting up metrics handler: getting metric http.handler: monitor client was not started")
	mHTTPServer.AssertNotCalled(t, "Run", mock.Anything)
	mMonitorService.AssertExpectations(t)
}
