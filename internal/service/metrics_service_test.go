package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/api/v1/courses", http.StatusOK, 20*time.Millisecond)
	metrics.ObserveStoreOperation("courses", "list", 10*time.Millisecond)
	metrics.ObserveStoreOperation("courses", "get", 30*time.Millisecond)
	metrics.RecordExportJob(models.ExportFormatCSV, models.ExportStatusFinished)

	snapshot := metrics.Snapshot()

	assert.Equal(t, uint64(1), snapshot.RequestsTotal)
	assert.InDelta(t, 20, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snapshot.StoreOperationCount)
	assert.InDelta(t, 20, snapshot.AverageStoreOperationMs, 0.001)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveStoreOperation("grades", "query", time.Millisecond)
	metrics.RecordExportJob(models.ExportFormatPDF, models.ExportStatusFailed)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(body, `store_operation_duration_seconds_count{op="query",table="grades"} 1`))
	assert.True(t, strings.Contains(body, `transcript_export_jobs_total{format="pdf",status="FAILED"} 1`))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var metrics *MetricsService

	metrics.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.ObserveStoreOperation("t", "list", time.Millisecond)

	assert.Nil(t, metrics.Registry())
	assert.False(t, metrics.Snapshot().GeneratedAt.IsZero())
}
