package domain

// Reconciliation is the derived view of a cart against a stock snapshot.
type Reconciliation struct {
	// InsufficientNames lists products whose cart quantity exceeds known stock,
	// de-duplicated and in cart order.
	InsufficientNames []string
	FetchInFlight     bool
	Blocked           bool
}

// Reconcile compares items against snapshot. It is pure: the same inputs give the same result.
func Reconcile(items []LineItem, snapshot Snapshot, fetchInFlight bool) Reconciliation {
	names := make([]string, 0)
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if int64(item.Qty) <= snapshot.Available(item.ProductID) {
			continue
		}
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}
		names = append(names, item.Name)
	}
	return Reconciliation{
		InsufficientNames: names,
		FetchInFlight:     fetchInFlight,
		Blocked:           len(names) > 0 || fetchInFlight,
	}
}
