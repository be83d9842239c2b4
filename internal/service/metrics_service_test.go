package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/store"
)

func TestMetricsSnapshotAggregatesStoreActions(t *testing.T) {
	m := NewMetricsService()

	m.ObserveStoreAction("student.add", 4*time.Millisecond)
	m.ObserveStoreAction("grade.add", 2*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.StoreActionCount)
	assert.InDelta(t, 3.0, snap.AverageStoreActionMs, 0.01)
}

func TestStoreMutationCountsTowardMetricsSnapshot(t *testing.T) {
	remote := &fakeRemote{schools: []models.SchoolData{{ID: "northwood-high"}}}
	st := store.New(remote, nil)
	require.NoError(t, st.Load(context.Background(), nil))

	m := NewMetricsService()
	st.SetObserver(m)
	assert.Equal(t, uint64(0), m.Snapshot().StoreActionCount)

	_, err := st.AddStudent(context.Background(), "northwood-high", models.Student{FullName: "Brian Otieno"})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), m.Snapshot().StoreActionCount)
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveStoreAction("student.add", time.Millisecond)
	m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	assert.Equal(t, models.SystemMetrics{}, m.Snapshot())
}
