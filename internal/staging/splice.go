package staging

import "slices"

// Splice returns a copy of items with the element at src moved to dst.
//
// The element is removed first and dst indexes the shortened sequence, so for
// [A B C] Splice(0, 2) yields [B C A] and Splice(2, 0) yields [C A B]. Valid
// positions are 0 <= src < len(items) and 0 <= dst < len(items). When either
// is out of range the original order is returned with ok == false.
func Splice[T any](items []T, src, dst int) (out []T, ok bool) {
	n := len(items)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return slices.Clone(items), false
	}

	out = slices.Clone(items)
	moved := out[src]
	out = slices.Delete(out, src, src+1)
	out = slices.Insert(out, dst, moved)
	return out, true
}
