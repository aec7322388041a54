package skill

import (
	"encoding/json"
	"sort"

	"jobboard/internal/pkg/normalize"
)

// Set is an immutable collection of normalized skill names. The zero value is
// an empty set.
type Set struct {
	names []string
	index map[string]struct{}
}

// New normalizes raw and keeps the first occurrence of every distinct name.
// Values that normalize to "" are dropped.
func New(raw ...string) Set {
	if len(raw) == 0 {
		return Set{}
	}
	s := Set{
		names: make([]string, 0, len(raw)),
		index: make(map[string]struct{}, len(raw)),
	}
	for _, r := range raw {
		n := normalize.String(r)
		if n == "" {
			continue
		}
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// FromAny builds a Set from an untyped document field. Anything other than a
// list of strings yields the empty set; non-string list members are skipped.
func FromAny(v any) Set {
	switch vv := v.(type) {
	case []string:
		return New(vv...)
	case []any:
		raw := make([]string, 0, len(vv))
		for _, it := range vv {
			if s, ok := it.(string); ok {
				raw = append(raw, s)
			}
		}
		return New(raw...)
	default:
		return Set{}
	}
}

func (s Set) Len() int {
	return len(s.names)
}

func (s Set) IsEmpty() bool {
	return len(s.names) == 0
}

// Contains reports whether name, after normalization, is a member.
func (s Set) Contains(name string) bool {
	if len(s.index) == 0 {
		return false
	}
	_, ok := s.index[normalize.String(name)]
	return ok
}

// Names returns the members in insertion order.
func (s Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// Split partitions the members of s into those present in other and those
// missing from it. Both slices are sorted.
func (s Set) Split(other Set) (present, missing []string) {
	present = make([]string, 0, len(s.names))
	missing = make([]string, 0)
	for _, n := range s.names {
		if _, ok := other.index[n]; ok {
			present = append(present, n)
			continue
		}
		missing = append(missing, n)
	}
	sort.Strings(present)
	sort.Strings(missing)
	return present, missing
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = New(raw...)
	return nil
}
