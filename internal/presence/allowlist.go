package presence

// AllowList is a fixed set of device addresses excluded from crowd
// counting: the installation's own beacons, staff phones and so on. It is
// built once at startup and never mutated, so lookups need no locking.
//
// Matching is exact and case-sensitive; callers must supply addresses in
// the same canonical form the list was built with.
type AllowList struct {
	addrs map[string]struct{}
}

// NewAllowList builds an AllowList from the given addresses.
func NewAllowList(addrs []string) *AllowList {
	set := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		set[a] = struct{}{}
	}
	return &AllowList{addrs: set}
}

// Known reports whether addr is on the list.
func (l *AllowList) Known(addr string) bool {
	_, ok := l.addrs[addr]
	return ok
}

// Len returns the number of listed addresses.
func (l *AllowList) Len() int {
	return len(l.addrs)
}
