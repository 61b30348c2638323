package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseMetricType(t *testing.T) {
	testCases := []struct {
		metricType      string
		wantMetricType  MetricType
		wantErrContains string
	}{
		{metricType: "", wantErrContains: `invalid metric type ""`},
		{metricType: "statsd", wantErrContains: `invalid metric type "STATSD"`},
		{metricType: "prometheus", wantMetricType: MetricTypePrometheus},
		{metricType: "PROMETHEUS", wantMetricType: MetricTypePrometheus},
	}

	for _, tc := range testCases {
		t.Run("metricType: "+tc.metricType, func(t *testing.T) {
			metricType, err := ParseMetricType(tc.metricType)
			if tc.wantErrContains != "" {
				assert.EqualError(t, err, tc.wantErrContains)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantMetricType, metricType)
		})
	}
}

func Test_GetClient(t *testing.T) {
	t.Run("prometheus client", func(t *testing.T) {
		client, err := GetClient(MetricOptions{MetricType: MetricTypePrometheus})
		require.NoError(t, err)
		assert.IsType(t, &prometheusClient{}, client)
	})

	t.Run("unknown metric type", func(t *testing.T) {
		client, err := GetClient(MetricOptions{MetricType: "UNKNOWN"})
		assert.EqualError(t, err, `unknown metric type: "UNKNOWN"`)
		assert.Nil(t, client)
	})
}
