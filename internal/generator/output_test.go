package generator

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest(id int64) *models.Request {
	ts := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	return &models.Request{
		RequestID:       id,
		MemberID:        4321,
		RequestTs:       ts,
		DispatchTs:      ts.Add(10 * time.Minute),
		ArrivalTs:       ts.Add(30 * time.Minute),
		CompletionTs:    ts.Add(75 * time.Minute),
		Latitude:        41.7015,
		Longitude:       -71.1550,
		ZipCode:         "02720",
		City:            "Fall River",
		State:           "MA",
		RoadType:        "HIGHWAY",
		IssueType:       "TOW",
		TruckID:         101,
		VIN:             "1HGBH41JXMN109186",
		MilesTowed:      12.5,
		CallSource:      "PHONE",
		MembershipStart: ts.AddDate(-2, 0, 0),
		MemberHomeZip:   "02721",
	}
}

func TestCSVOutputWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	out := NewCSVOutput(&buf)

	requests := []*models.Request{sampleRequest(1), sampleRequest(2), sampleRequest(3)}
	require.NoError(t, out.WriteRequests(requests))
	require.NoError(t, out.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2024-02-01 09:30:00", records[1][2])
	assert.Equal(t, "41.701500", records[1][6])
	assert.Equal(t, "12.5", records[1][15])
	assert.Equal(t, "02721", records[1][18])
}

func TestObjectNameIsDateStamped(t *testing.T) {
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, "synthetic_roadside_requests_2024-03-31.csv", objectName("csv", end))
	assert.Equal(t, "synthetic_roadside_requests_2024-03-31.parquet", objectName("parquet", end))
}
