// Package version derives the release version prefix from git metadata.
package version

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Matches a three-part version embedded anywhere in a branch name,
// e.g. "release/2.3.1" or "hotfix-1.12.0-login".
var branchVersion = regexp.MustCompile(`(\d+)\.(\d+)\.\d+`)

// ResolveMajorMinor picks the major.minor prefix for a release.
// Precedence: a non-empty override is used verbatim, then a version
// embedded in the current branch name, then the highest tag, then "0.0".
// Tags are expected sorted by version, descending.
func ResolveMajorMinor(override, branch string, tags []string) string {
	if override != "" {
		return override
	}
	if m := branchVersion.FindStringSubmatch(branch); m != nil {
		return m[1] + "." + m[2]
	}
	return majorMinorFromTags(tags)
}

func majorMinorFromTags(tags []string) string {
	if len(tags) == 0 {
		return "0.0"
	}
	// Strip any "v"-style prefix before the first digit.
	tag := strings.TrimLeftFunc(tags[0], func(r rune) bool { return !unicode.IsDigit(r) })
	parts := strings.Split(tag, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "0.0"
	}
	return parts[0] + "." + parts[1]
}

// Compose builds the full version string: major.minor, the local calendar
// date, and a fixed build component of 1.
func Compose(majorMinor string, now time.Time) string {
	return fmt.Sprintf("%s.%s.1", majorMinor, now.Format("20060102"))
}
