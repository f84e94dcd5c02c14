package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{
			name: "midnight utc",
			ts:   NewTimestamp(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			want: `"2024-03-01T00:00:00.000Z"`,
		},
		{
			name: "offset is normalized to utc",
			ts:   NewTimestamp(time.Date(2024, 3, 1, 3, 30, 0, 0, time.FixedZone("MSK", 3*60*60))),
			want: `"2024-03-01T00:30:00.000Z"`,
		},
		{
			name: "zero",
			ts:   Timestamp{},
			want: `null`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.ts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		wantDate string
		wantErr  bool
	}{
		{name: "iso with millis", input: `"2024-03-01T00:00:00.000Z"`, wantDate: "2024-03-01"},
		{name: "iso without fraction", input: `"2024-03-01T10:15:00Z"`, wantDate: "2024-03-01"},
		{name: "positive offset keeps its own date", input: `"2024-03-01T01:00:00+03:00"`, wantDate: "2024-03-01"},
		{name: "date only", input: `"2024-03-01"`, wantDate: "2024-03-01"},
		{name: "null", input: `null`, wantDate: ""},
		{name: "empty string", input: `""`, wantDate: ""},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12`, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tc.input), &ts)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDate, ts.CalendarDate())
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	ts, err := ParseDate(" 2024-03-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ts.Time)

	_, err = ParseDate("01.03.2024")
	require.Error(t, err)
}
