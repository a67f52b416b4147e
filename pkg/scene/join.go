package scene

import "strconv"

// JoinResult is the outcome of joining an old key sequence with a new one.
type JoinResult struct {
	// Enter lists keys present only in the new sequence, in new order.
	Enter []string
	// Update lists keys present in both, in new order.
	Update []string
	// Exit lists keys present only in the old sequence, in old order.
	Exit []string
}

// Join compares prev and next by key. Duplicate keys in next are joined once.
func Join(prev, next []string) JoinResult {
	old := make(map[string]struct{}, len(prev))
	for _, k := range prev {
		old[k] = struct{}{}
	}

	var res JoinResult
	seen := make(map[string]struct{}, len(next))
	for _, k := range next {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := old[k]; ok {
			res.Update = append(res.Update, k)
		} else {
			res.Enter = append(res.Enter, k)
		}
	}
	for _, k := range prev {
		if _, ok := seen[k]; !ok {
			res.Exit = append(res.Exit, k)
		}
	}
	return res
}

// KeyOf returns the join key for a numeric datum.
func KeyOf(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
