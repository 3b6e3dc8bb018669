package insight

import "time"

const (
	// DefaultMaxAge bounds how long a cached insight set stays fresh even
	// when its data hash still matches.
	DefaultMaxAge = 24 * time.Hour

	// MinCheckIns and MinActivities gate generation; below these the caller
	// shows a not-enough-data state instead of calling the summarizer.
	MinCheckIns   = 3
	MinActivities = 5
)

// CacheValid reports whether a cached insight set may be served. Both the
// hash match and the freshness window are required.
func CacheValid(cachedHash, currentHash string, generatedAt time.Time, maxAge time.Duration, now time.Time) bool {
	if cachedHash == "" || cachedHash != currentHash {
		return false
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return now.Sub(generatedAt) <= maxAge
}

// EnoughData reports whether generation is worth attempting at all.
func EnoughData(checkIns, activities int) bool {
	return checkIns >= MinCheckIns && activities >= MinActivities
}
