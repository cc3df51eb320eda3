package bencode

// budget is the allocation quota of a single decode call. Every list element
// and dict entry costs one unit; string payloads are borrowed and free.
type budget struct {
	remaining int
}

func newBudget(limit int) budget {
	if limit < 0 {
		limit = 0
	}
	return budget{remaining: limit}
}

// charge takes n units and reports false once the quota would go negative.
func (b *budget) charge(n int) bool {
	if n > b.remaining {
		return false
	}
	b.remaining -= n
	return true
}
