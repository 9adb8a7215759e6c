package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestUpdateContentCounts(t *testing.T) {
	UpdateContentCounts(map[string]int64{"news": 12, "live_streams": 3})

	assert.Equal(t, 12.0, gaugeValue(t, ContentItems.WithLabelValues("news")))
	assert.Equal(t, 3.0, gaugeValue(t, ContentItems.WithLabelValues("live_streams")))

	UpdateContentCounts(map[string]int64{"news": 13})
	assert.Equal(t, 13.0, gaugeValue(t, ContentItems.WithLabelValues("news")))
	assert.Equal(t, 3.0, gaugeValue(t, ContentItems.WithLabelValues("live_streams")))
}

func TestRecordFeedImport(t *testing.T) {
	inserted := NewsImportedTotal.WithLabelValues("901", "inserted")
	duplicated := NewsImportedTotal.WithLabelValues("901", "duplicated")
	before := counterValue(t, inserted)
	beforeDup := counterValue(t, duplicated)

	RecordFeedImport(901, 250*time.Millisecond, 4, 2)
	RecordFeedImport(901, time.Second, 0, 0)

	assert.Equal(t, before+4, counterValue(t, inserted))
	assert.Equal(t, beforeDup+2, counterValue(t, duplicated))
}

func TestRecordFeedImportError(t *testing.T) {
	c := FeedImportErrors.WithLabelValues("902", "fetch_failed")
	before := counterValue(t, c)

	RecordFeedImportError(902, "fetch_failed")
	assert.Equal(t, before+1, counterValue(t, c))
}

func TestRecordUpload(t *testing.T) {
	ok := UploadsTotal.WithLabelValues("images", "success")
	rejected := UploadsTotal.WithLabelValues("images", "rejected")
	before, beforeRejected := counterValue(t, ok), counterValue(t, rejected)

	RecordUpload("images", "success", 2048)
	RecordUpload("images", "rejected", 0)

	assert.Equal(t, before+1, counterValue(t, ok))
	assert.Equal(t, beforeRejected+1, counterValue(t, rejected))
}

func TestRecordStreamStatusChange(t *testing.T) {
	c := StreamStatusChanges.WithLabelValues("recess")
	before := counterValue(t, c)

	RecordStreamStatusChange("recess")
	assert.Equal(t, before+1, counterValue(t, c))
}

func TestDBMetrics(t *testing.T) {
	UpdateDBConnectionStats(4, 6)
	assert.Equal(t, 4.0, gaugeValue(t, DBConnectionsActive))
	assert.Equal(t, 6.0, gaugeValue(t, DBConnectionsIdle))
}

func TestObserveHomepageSection(t *testing.T) {
	HomepageSectionDuration.Reset()

	ObserveHomepageSection("programs", 3*time.Millisecond, nil)
	ObserveHomepageSection("programs", time.Millisecond, errors.New("timeout"))
	ObserveHomepageSection("radio_programs", time.Millisecond, nil)

	assert.Equal(t, 3, testutil.CollectAndCount(HomepageSectionDuration))
}
