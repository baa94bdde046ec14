// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the ceiling for ordinary JSON request bodies
	// (group creation, posts, messages, reviews).
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxGuideBodySize is the ceiling for destination guide submissions,
	// which carry sanitized rich HTML and run larger than normal bodies.
	MaxGuideBodySize = 4 << 20 // 4 MB
)
