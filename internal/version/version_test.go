package version

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMinorVersion(t *testing.T) {
	assert.Equal(t, "0.2", GetMinorVersion("0.2.7"))
	assert.Equal(t, "", GetMinorVersion("0.2"))
	assert.Equal(t, "1.10.0", GetSchemaVersion("1.10.3"))
}

func TestIsVersionGreaterThan(t *testing.T) {
	tests := []struct {
		version string
		target  string
		want    bool
	}{
		{"0.2.0", "0.1.0", true},
		{"0.10.0", "0.9.0", true},
		{"0.2.0", "0.2.0", false},
		{"0.1.9", "0.2.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsVersionGreaterThan(tt.version, tt.target), "%s > %s", tt.version, tt.target)
	}
	assert.True(t, IsVersionGreaterOrEqualThan("0.2.0", "0.2.0"))
}

func TestSortVersion(t *testing.T) {
	versions := []string{"0.10.0", "0.2.0", "0.9.1", "0.1.0"}
	sort.Sort(SortVersion(versions))
	assert.Equal(t, []string{"0.1.0", "0.2.0", "0.9.1", "0.10.0"}, versions)
}
