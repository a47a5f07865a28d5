package termline

// historyRecall tracks how far back the user has walked into history.
// Index 0 is the live line; index n shows History.Get(n-1).
type historyRecall struct {
	history History
	index   int
}

// older steps one entry back. It reports false at the oldest entry.
func (r *historyRecall) older() (string, bool) {
	if r.history == nil || r.index >= r.history.Len() {
		return "", false
	}
	r.index++
	return r.history.Get(r.index - 1), true
}

// newer steps one entry forward. Reaching index 0 yields the empty live line.
func (r *historyRecall) newer() (string, bool) {
	if r.index == 0 {
		return "", false
	}
	r.index--
	if r.index == 0 {
		return "", true
	}
	return r.history.Get(r.index - 1), true
}

func (r *historyRecall) recalling() bool {
	return r.index > 0
}

func (r *historyRecall) detach() {
	r.index = 0
}
