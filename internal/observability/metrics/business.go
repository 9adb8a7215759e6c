package metrics

import (
	"strconv"
	"time"
)

// UpdateContentCounts sets the per-table gauges from a fresh count.
// Tables missing from counts keep their previous value.
func UpdateContentCounts(counts map[string]int64) {
	for table, n := range counts {
		ContentItems.WithLabelValues(table).Set(float64(n))
	}
}

// RecordFeedImport records metrics for one feed import pass.
func RecordFeedImport(feedID int64, duration time.Duration, inserted, duplicated int64) {
	id := strconv.FormatInt(feedID, 10)
	FeedImportDuration.WithLabelValues(id).Observe(duration.Seconds())
	if inserted > 0 {
		NewsImportedTotal.WithLabelValues(id, "inserted").Add(float64(inserted))
	}
	if duplicated > 0 {
		NewsImportedTotal.WithLabelValues(id, "duplicated").Add(float64(duplicated))
	}
}

// RecordFeedImportError records an error during feed import.
func RecordFeedImportError(feedID int64, errorType string) {
	FeedImportErrors.WithLabelValues(strconv.FormatInt(feedID, 10), errorType).Inc()
}

// RecordUpload records an upload attempt. size is only observed for
// successful uploads.
func RecordUpload(folder, result string, size int64) {
	UploadsTotal.WithLabelValues(folder, result).Inc()
	if result == "success" {
		UploadSize.WithLabelValues(folder).Observe(float64(size))
	}
}

// RecordStreamStatusChange counts a transition into status.
func RecordStreamStatusChange(status string) {
	StreamStatusChanges.WithLabelValues(status).Inc()
}

// ObserveHomepageSection records how long a homepage section took and
// whether it loaded.
func ObserveHomepageSection(section string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	HomepageSectionDuration.WithLabelValues(section, result).Observe(took.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
