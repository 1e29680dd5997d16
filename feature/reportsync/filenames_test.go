package reportsync

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedFileNames_StartAfterEnd(t *testing.T) {
	assert.Empty(t, ExpectedFileNames(date("2024-01-10"), date("2024-01-09"), "participation"))
	assert.Empty(t, ExpectedFileNames(date("2025-01-01"), date("2024-01-01"), "resources"))
}

func TestExpectedFileNames_Range(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-participation-students\.csv$`)

	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-06", "2024-01-06", 1},
		{"2024-01-06", "2024-01-09", 4},
		{"2024-02-27", "2024-03-01", 4}, // leap year
		{"2023-12-30", "2024-01-02", 4},
	}
	for _, tc := range cases {
		t.Run(tc.start+"_"+tc.end, func(t *testing.T) {
			names := ExpectedFileNames(date(tc.start), date(tc.end), "participation")
			require.Len(t, names, tc.want)
			assert.Equal(t, tc.start, names[0].Date.Format("2006-01-02"))
			assert.Equal(t, tc.end, names[len(names)-1].Date.Format("2006-01-02"))
			for i, n := range names {
				assert.Regexp(t, pattern, n.String())
				if i > 0 {
					assert.True(t, n.Date.After(names[i-1].Date))
					assert.Greater(t, n.String(), names[i-1].String())
				}
			}
		})
	}
}

func TestExpectedFileNames_Format(t *testing.T) {
	names := ExpectedFileNames(date("2024-01-06"), date("2024-01-07"), "resources")
	require.Len(t, names, 2)
	assert.Equal(t, "2024-01-06-resources-students.csv", names[0].String())
	assert.Equal(t, "2024-01-07-resources-students.csv", names[1].String())
}

func TestExpectedFileNames_Deterministic(t *testing.T) {
	a := ExpectedFileNames(date("2024-01-01"), date("2024-01-31"), "participation")
	b := ExpectedFileNames(date("2024-01-01"), date("2024-01-31"), "participation")
	assert.Equal(t, a, b)
}
