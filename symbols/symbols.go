// Package symbols catalogues every native entry point the bridge resolves
// through get_proc_address. It is pure Go so tools can inspect the set
// without linking against a host.
package symbols

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// ID is the index of an entry point in the function table.
type ID int

// Entry describes one native entry point.
type Entry struct {
	ID        ID
	Name      string // name passed to get_proc_address
	Group     string // memory, print, string, classdb, object, variant, array, packed, plugin
	Signature string // C function pointer type
}

var byName map[string]ID

func init() {
	byName = make(map[string]ID, len(catalogue))
	for _, e := range catalogue {
		byName[e.Name] = e.ID
	}
}

// All returns the catalogue in ID order. The slice is a copy.
func All() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue[:])
	return out
}

// Get returns the entry for id. It panics on an out-of-range id.
func Get(id ID) Entry {
	return catalogue[id]
}

// Name returns the native name for id.
func (id ID) Name() string {
	if id < 0 || int(id) >= Count {
		return ""
	}
	return catalogue[id].Name
}

func (id ID) String() string {
	if n := id.Name(); n != "" {
		return n
	}
	return "symbols.ID(?)"
}

// Lookup finds an entry by native name.
func Lookup(name string) (Entry, bool) {
	id, ok := byName[name]
	if !ok {
		return Entry{}, false
	}
	return catalogue[id], true
}

// Groups returns the distinct groups in catalogue order.
func Groups() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range catalogue {
		if !seen[e.Group] {
			seen[e.Group] = true
			out = append(out, e.Group)
		}
	}
	return out
}

// InGroup returns the entries of one group in ID order.
func InGroup(group string) []Entry {
	var out []Entry
	for _, e := range catalogue {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

// Suggest returns up to n catalogue names closest to name by edit distance.
// Names further than half the query length are not considered similar.
func Suggest(name string, n int) []string {
	names := make([]string, len(catalogue))
	for i, e := range catalogue {
		names[i] = e.Name
	}
	return Closest(name, names, n)
}

// Closest is Suggest over an arbitrary candidate list, such as the names
// declared by a header from a different engine version.
func Closest(name string, candidates []string, n int) []string {
	if n <= 0 || name == "" {
		return nil
	}

	type scored struct {
		name string
		dist int
	}

	limit := len(name)/2 + 1
	var cands []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(name, c)
		if d <= limit {
			cands = append(cands, scored{c, d})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})

	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}
