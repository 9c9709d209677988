package domain

// Snapshot maps product id to available quantity as of the last fetch.
// A missing key means zero.
type Snapshot map[string]int64

// Available returns the known stock for productID, zero when absent.
func (s Snapshot) Available(productID string) int64 {
	if s == nil {
		return 0
	}
	return s[productID]
}

// Known reports whether the snapshot carries an entry for productID.
func (s Snapshot) Known(productID string) bool {
	_, ok := s[productID]
	return ok
}

// Clone copies the snapshot so callers cannot mutate shared state.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
