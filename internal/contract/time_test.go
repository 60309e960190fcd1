package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseDay accepts compact and ISO forms.
func TestParseDay(t *testing.T) {
	want := time.Date(2015, time.January, 3, 0, 0, 0, 0, time.UTC)

	got, err := ParseDay("20150103")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDay("2015-01-03")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseDay("03/01/2015")
	assert.ErrorContains(t, err, "unrecognized day")
}

// TestParseTimestamp falls through the export layouts.
func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			input: "2016-05-02T08:15:00Z",
			want:  time.Date(2016, time.May, 2, 8, 15, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: "2016-05-02 08:15:00",
			want:  time.Date(2016, time.May, 2, 8, 15, 0, 0, time.UTC),
		},
		{
			name:  "bare day",
			input: "2016-05-02",
			want:  time.Date(2016, time.May, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "nonsense",
			input:   "yesterday morning",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestFormatISOWeek pins the weekly aggregate label format.
func TestFormatISOWeek(t *testing.T) {
	assert.Equal(t, "2015-W03", FormatISOWeek(2015, 3))
	assert.Equal(t, "2020-W53", FormatISOWeek(2020, 53))
}

// TestFormatDay is the inverse of ParseDay for ISO days.
func TestFormatDay(t *testing.T) {
	d := time.Date(2015, time.January, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2015-01-03", FormatDay(d))
}
