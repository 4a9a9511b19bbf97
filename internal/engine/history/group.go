package history

// BeginGroup starts collecting transactions into one undo unit named name.
// Nested calls are ignored; the outer group wins.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupTxs = nil
}

// EndGroup closes the open group and records its transactions as one
// merged transaction, which it returns. It returns nil when no group is
// open or the group recorded nothing.
func (h *History) EndGroup() *Transaction {
	if !h.grouping {
		return nil
	}
	h.grouping = false

	merged := Merge(h.groupName, h.groupTxs)
	h.groupTxs = nil
	if merged == nil {
		return nil
	}
	h.push(merged)
	return merged
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	return h.grouping
}

// GroupScope wraps BeginGroup/EndGroup for use with defer:
//
//	defer h.GroupScope("Replace All").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope begins a group and returns its scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the group. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}
