package bloomfilter

// Error is a constant error reported by the filter.
type Error string

const (
	// ErrInvalidParameter is returned by New when the false-positive
	// probability is outside (0, 1) or the expected count is not positive.
	ErrInvalidParameter Error = "bloomfilter: invalid parameter"
	// ErrInvalidElement is returned when an element has no stable byte form.
	ErrInvalidElement Error = "bloomfilter: invalid element"
	// ErrUndefined is returned for per-element ratios of an empty filter.
	ErrUndefined Error = "bloomfilter: undefined for empty filter"
)

func (e Error) Error() string {
	return string(e)
}
