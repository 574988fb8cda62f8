package monitor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelabs-io/synthetics-forge/testutil"
)

func TestMySQLStoreCreate(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	m := createTestMonitor("widget_repo", "https://github.com/acme/widget")
	require.NoError(t, store.Create(ctx, m))
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, StatusCreated, m.Status)
}

func TestMySQLStoreCreateValidation(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Monitor)
		wantErr error
	}{
		{"missing test name", func(m *Monitor) { m.TestName = "" }, ErrInvalidTestName},
		{"missing url", func(m *Monitor) { m.WebsiteURL = "" }, ErrInvalidWebsiteURL},
		{"missing file path", func(m *Monitor) { m.FilePath = "" }, ErrInvalidFilePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := createTestMonitor("t", "https://example.com")
			tt.mutate(m)
			assert.ErrorIs(t, store.Create(ctx, m), tt.wantErr)
		})
	}
}

func TestMySQLStoreGetByID(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	m := createTestMonitor("widget_repo", "https://github.com/acme/widget")
	require.NoError(t, store.Create(ctx, m))

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.TestName, got.TestName)
	assert.Equal(t, m.WebsiteURL, got.WebsiteURL)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrMonitorNotFound)
}

func TestMySQLStoreList(t *testing.T) {
	db, store := setupTestStore(t)
	ctx := context.Background()

	testutil.CreateFixtures(t, db,
		createTestMonitor("first", "https://a.example.com"),
		createTestMonitor("second", "https://b.example.com"),
		createTestMonitor("third", "https://c.example.com"))

	monitors, total, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, monitors, 2)
}

func TestMySQLStoreUpdateDeployOutcome(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	m := createTestMonitor("widget_repo", "https://github.com/acme/widget")
	require.NoError(t, store.Create(ctx, m))

	monitorID := uuid.New().String()
	err := store.Update(ctx, m.ID,
		SetDeployed("https://kibana.example.com/app/synthetics/monitor/abc", monitorID))
	require.NoError(t, err)

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDeployed, got.Status)
	require.NotNil(t, got.MonitorURL)
	assert.Equal(t, "https://kibana.example.com/app/synthetics/monitor/abc", *got.MonitorURL)
	require.NotNil(t, got.MonitorID)
	assert.Equal(t, monitorID, *got.MonitorID)
}

func TestMySQLStoreUpdateFailure(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	m := createTestMonitor("widget_repo", "https://github.com/acme/widget")
	require.NoError(t, store.Create(ctx, m))

	err := store.Update(ctx, m.ID,
		SetStatus(StatusDeployFailed),
		SetErrorMessage("push exited with code 1"))
	require.NoError(t, err)

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDeployFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "push exited with code 1", *got.ErrorMessage)

	// Updating a missing record reports not found.
	assert.ErrorIs(t, store.Update(ctx, uuid.New(), SetStatus(StatusDeployed)), ErrMonitorNotFound)
}

func TestMySQLStoreDelete(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	m := createTestMonitor("widget_repo", "https://github.com/acme/widget")
	require.NoError(t, store.Create(ctx, m))

	require.NoError(t, store.Delete(ctx, m.ID))
	_, err := store.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrMonitorNotFound)

	assert.ErrorIs(t, store.Delete(ctx, m.ID), ErrMonitorNotFound)
}
