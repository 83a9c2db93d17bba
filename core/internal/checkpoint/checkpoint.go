// Package checkpoint derives timestamp-qualified names for package snapshots.
package checkpoint

import (
	"strings"
	"time"
)

// Layout formats a checkpoint suffix: YYYY-MM-DD-HH-MM-SS.mmm.
const Layout = "2006-01-02-15-04-05.000"

// Suffix formats t in local time with millisecond resolution.
// Two calls within the same millisecond return the same suffix.
func Suffix(t time.Time) string {
	return t.Local().Format(Layout)
}

// Parse recovers the instant encoded by Suffix.
func Parse(suffix string) (time.Time, error) {
	return time.ParseInLocation(Layout, suffix, time.Local)
}

var separators = strings.NewReplacer("/", "_", "\\", "_")

// FileName returns "<object>.<ext>", or "<object>-<suffix>.<ext>" when
// isCheckpoint is set, lower-cased. Path separators in object become '_'.
func FileName(object, ext string, isCheckpoint bool, now time.Time) string {
	base := separators.Replace(object)
	if isCheckpoint {
		base += "-" + Suffix(now)
	}
	return strings.ToLower(base + "." + strings.TrimPrefix(ext, "."))
}

// SplitFileName reverses FileName for a base name without extension.
// ok reports whether base carries a checkpoint suffix.
func SplitFileName(base string) (object string, at time.Time, ok bool) {
	n := len(Layout) + 1
	if len(base) <= n || base[len(base)-n] != '-' {
		return base, time.Time{}, false
	}
	at, err := Parse(base[len(base)-n+1:])
	if err != nil {
		return base, time.Time{}, false
	}
	return base[:len(base)-n], at, true
}

const tempSuffix = ".tmp"

// TempPattern is the os.CreateTemp pattern for a package being written
// to a file named base.
func TempPattern(base string) string {
	return "." + base + "-*" + tempSuffix
}

// IsTemp reports whether name is a TempPattern file for a package with
// extension ext, as left behind by an interrupted write.
func IsTemp(name, ext string) bool {
	name = strings.ToLower(name)
	return strings.HasPrefix(name, ".") &&
		strings.HasSuffix(name, tempSuffix) &&
		strings.Contains(name, "."+strings.ToLower(strings.TrimPrefix(ext, "."))+"-")
}
