package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(v, b, c string) { Version, BuildTime, GitCommit = v, b, c }(Version, BuildTime, GitCommit)

	Version, BuildTime, GitCommit = "dev", "unknown", "unknown"
	assert.Equal(t, "dev", String())

	Version, BuildTime, GitCommit = "v1.2.0", "2026-10-01T12:00:00Z", "abc1234"
	assert.Equal(t, "v1.2.0 (commit abc1234, built 2026-10-01T12:00:00Z)", String())
}
