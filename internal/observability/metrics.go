package observability

// Lookup sources for ObserveLookup.
const (
	SourceCache = "cache"
	SourceDB    = "db"
)

type Metrics interface {
	IncCacheHit()
	IncCacheMiss()
	ObserveLookup(source string, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveInvalidation(keys int)
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
func (Noop) ObserveLookup(string, float64)            {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveInvalidation(int)                  {}
