package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/domain/event"
	"github.com/cloudvigil/zombiescan/internal/domain/model"
)

func TestNewScan(t *testing.T) {
	scan, err := model.NewScan([]string{"us-east-1", "eu-west-1"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, scan.ID())
	assert.Equal(t, model.ScanStatusRunning, scan.Status())
	assert.False(t, scan.StartedAt().IsZero())
	assert.Zero(t, scan.Duration())
}

func TestNewScan_RequiresRegions(t *testing.T) {
	_, err := model.NewScan(nil)
	assert.ErrorContains(t, err, "region")
}

func TestScanComplete(t *testing.T) {
	scan, err := model.NewScan([]string{"us-east-1"})
	require.NoError(t, err)

	counts := map[string]int{"HIGH": 2, "VERY_LOW": 5}
	err = scan.Complete(7, counts, decimal.RequireFromString("123.45"))
	require.NoError(t, err)

	assert.Equal(t, model.ScanStatusCompleted, scan.Status())
	assert.Equal(t, 7, scan.TotalResources())
	assert.Equal(t, counts, scan.CountsByTier())
	assert.True(t, scan.Duration() >= 0)

	evts := scan.Events()
	require.Len(t, evts, 1)
	completed, ok := evts[0].(event.ScanCompleted)
	require.True(t, ok)
	assert.Equal(t, event.EventTypeScanCompleted, completed.EventType())
	assert.Equal(t, "123.45", completed.MonthlySavings)
	assert.Equal(t, 7, completed.TotalResources)
}

func TestScanComplete_OnlyOnce(t *testing.T) {
	scan, err := model.NewScan([]string{"us-east-1"})
	require.NoError(t, err)

	require.NoError(t, scan.Complete(0, nil, decimal.Zero))
	err = scan.Complete(0, nil, decimal.Zero)
	assert.ErrorContains(t, err, "not running")
}

func TestScanFail(t *testing.T) {
	scan, err := model.NewScan([]string{"us-east-1"})
	require.NoError(t, err)

	scan.Fail()

	assert.Equal(t, model.ScanStatusFailed, scan.Status())
	assert.False(t, scan.CompletedAt().IsZero())
	assert.Empty(t, scan.Events())
}
