package models

import "sort"

// SanitizeList applies the read-path rules to a raw backend result: drop
// every order whose own id or any product id is not a valid UUID, normalize
// the survivors, and sort by CreatedAt descending. The input slice is not
// modified; survivors are returned in a fresh slice (the *Order values are
// normalized in place).
func SanitizeList(orders []*Order) []*Order {
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o == nil || !o.HasValidIDs() {
			continue
		}
		o.Normalize()
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
