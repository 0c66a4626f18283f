package businessflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected int
		wantErr  bool
		check    func(t *testing.T, err error)
	}{
		{
			name:     "SevenDays",
			window:   "7d",
			expected: 7,
		},
		{
			name:     "ThirtyDays",
			window:   "30d",
			expected: 30,
		},
		{
			name:     "SingleDay",
			window:   "1d",
			expected: 1,
		},
		{
			name:     "MaximumWindow",
			window:   "365d",
			expected: 365,
		},
		{
			name:     "UppercaseSuffix",
			window:   "7D",
			expected: 7,
		},
		{
			name:     "SurroundingWhitespace",
			window:   "  14d  ",
			expected: 14,
		},
		{
			name:    "MissingSuffix",
			window:  "7",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
		{
			name:    "EmptyString",
			window:  "",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
		{
			name:    "BareSuffix",
			window:  "d",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
		{
			name:    "NonNumericDigits",
			window:  "abcd",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
		{
			name:    "NegativeDays",
			window:  "-7d",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
		{
			name:    "ZeroDays",
			window:  "0d",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsWindowOutOfRange(err))
			},
		},
		{
			name:    "BeyondMaximum",
			window:  "366d",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsWindowOutOfRange(err))
			},
		},
		{
			name:    "WrongUnit",
			window:  "7w",
			wantErr: true,
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidWindowFormat(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := ResolveWindow(tt.window)
			if tt.wantErr {
				require.Error(t, err)
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestResolveWindowErrorMessages(t *testing.T) {
	_, err := ResolveWindow("7x")
	require.Error(t, err)
	assert.Equal(t, "Window must be like 7d or 30d", businessErrorText(err))

	_, err = ResolveWindow("400d")
	require.Error(t, err)
	assert.Equal(t, "Window days must be between 1 and 365", businessErrorText(err))
}

func businessErrorText(err error) string {
	be, ok := err.(*BusinessError)
	if !ok {
		return ""
	}
	return be.Message
}

func TestWindowStart(t *testing.T) {
	start := WindowStart(7)
	expected := time.Now().UTC().AddDate(0, 0, -7)

	assert.Equal(t, time.UTC, start.Location())
	assert.WithinDuration(t, expected, start, 5*time.Second)
	assert.True(t, start.Before(time.Now().UTC()))
}
