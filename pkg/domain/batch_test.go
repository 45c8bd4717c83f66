package domain_test

import (
	"batchstamp/pkg/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBatchTimestamp_String(t *testing.T) {
	ts := domain.NewBatchTimestamp(time.Date(2020, time.May, 1, 23, 59, 10, 0, time.UTC))
	require.Equal(t, "2020-05-01", ts.String())

	parsed, err := time.Parse(domain.DateLayout, ts.String())
	require.NoError(t, err)
	require.Equal(t, 2020, parsed.Year())
	require.Equal(t, time.May, parsed.Month())
	require.Equal(t, 1, parsed.Day())
}

func TestBatchID_IsZero(t *testing.T) {
	require.True(t, domain.BatchID("").IsZero())
	require.True(t, domain.BatchID("  \n").IsZero())
	require.False(t, domain.BatchID("BI1E").IsZero())
	require.Equal(t, "BI1E", domain.BatchID("BI1E").String())
}
