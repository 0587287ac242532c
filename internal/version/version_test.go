package version

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveMajorMinor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		override string
		branch   string
		tags     []string
		want     string
	}{
		{name: "override wins verbatim", override: "7.9", branch: "release/2.3.1", tags: []string{"v1.4.0"}, want: "7.9"},
		{name: "override is not validated", override: "not-a-version", want: "not-a-version"},
		{name: "branch with release prefix", branch: "release/2.3.1", want: "2.3"},
		{name: "branch with embedded version", branch: "hotfix-1.12.4-login", want: "1.12"},
		{name: "branch beats tags", branch: "release/2.3.1", tags: []string{"v9.9.9"}, want: "2.3"},
		{name: "highest tag when branch has no version", branch: "main", tags: []string{"v1.4.0", "v1.2.0"}, want: "1.4"},
		{name: "tag without v prefix", branch: "main", tags: []string{"3.1.7"}, want: "3.1"},
		{name: "no branch match and no tags", branch: "main", want: "0.0"},
		{name: "unparseable tag falls back", branch: "main", tags: []string{"nightly"}, want: "0.0"},
		{name: "single-component tag falls back", branch: "main", tags: []string{"v2"}, want: "0.0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolveMajorMinor(tt.override, tt.branch, tt.tags))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.March, 9, 15, 4, 5, 0, time.Local)
	assert.Equal(t, "2.3.20240309.1", Compose("2.3", day))

	// The full string always matches major.minor.YYYYMMDD.1.
	pattern := regexp.MustCompile(`^\d+\.\d+\.\d{8}\.1$`)
	for _, mm := range []string{"0.0", "1.4", "12.345"} {
		assert.Regexp(t, pattern, Compose(mm, time.Now()))
	}
}
