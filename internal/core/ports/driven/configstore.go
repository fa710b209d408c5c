package driven

// ConfigStore holds flat dotted settings keys such as
// "retrieval.search_top_k". Typed getters return the zero value for a
// missing key or a value of the wrong type; callers that need to tell
// the two apart use Get.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts int, int64 and float64 values.
	GetInt(key string) int

	// GetFloat accepts float64, int and int64 values.
	GetFloat(key string) float64

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Save persists the current values.
	Save() error

	// Load replaces the current values with the persisted ones.
	Load() error

	// Path reports where values are persisted.
	Path() string
}
