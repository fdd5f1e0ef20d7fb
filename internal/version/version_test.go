package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildID(t *testing.T) {
	cases := map[string]int{
		"2025-12-04": 0,
		"2025-12-31": 27,
		"2026-03-01": 87,
		"2028-12-04": 1096, // 2028 високосный
	}
	for date, want := range cases {
		t.Run(date, func(t *testing.T) {
			got, err := BuildID(date)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	for _, bad := range []string{"", "04.12.2025", "2025-12-03", "2025-13-01"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := BuildID(bad)
			assert.Error(t, err)
		})
	}
}

func TestInfo(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	t.Cleanup(func() { BuildDate, BuildCommit = oldDate, oldCommit })

	BuildDate, BuildCommit = "2025-12-14", "abc123"
	info := Info()
	assert.True(t, info.Calculated)
	assert.Equal(t, 10, info.BuildID)
	assert.NotEmpty(t, info.GoVersion)
	assert.True(t, strings.HasPrefix(String(), "Warrens build 10 (2025-12-14) commit[abc123]"))

	BuildDate = ""
	info = Info()
	assert.False(t, info.Calculated)
	assert.NotEmpty(t, info.Error)
	assert.Contains(t, String(), "build unknown")
}
