package models

import (
	"encoding/json"
	"sort"
)

// StringSet is an immutable set of strings. The zero value is an empty set.
type StringSet struct {
	items map[string]struct{}
}

func NewStringSet(items ...string) StringSet {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}
	return StringSet{items: m}
}

func (s StringSet) Len() int {
	return len(s.items)
}

func (s StringSet) IsEmpty() bool {
	return len(s.items) == 0
}

func (s StringSet) Has(item string) bool {
	_, ok := s.items[item]
	return ok
}

// Items returns the members sorted, so output built from a set is stable.
func (s StringSet) Items() []string {
	out := make([]string, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// IntersectionLen counts the members present in both sets.
func (s StringSet) IntersectionLen(other StringSet) int {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	n := 0
	for item := range small.items {
		if large.Has(item) {
			n++
		}
	}
	return n
}

func (s StringSet) UnionLen(other StringSet) int {
	return s.Len() + other.Len() - s.IntersectionLen(other)
}

func (s StringSet) Union(other StringSet) StringSet {
	m := make(map[string]struct{}, s.Len()+other.Len())
	for item := range s.items {
		m[item] = struct{}{}
	}
	for item := range other.items {
		m[item] = struct{}{}
	}
	return StringSet{items: m}
}

// Difference returns the members of s that are not in other.
func (s StringSet) Difference(other StringSet) StringSet {
	m := make(map[string]struct{}, s.Len())
	for item := range s.items {
		if !other.Has(item) {
			m[item] = struct{}{}
		}
	}
	return StringSet{items: m}
}

func (s StringSet) Equal(other StringSet) bool {
	return s.Len() == other.Len() && s.IntersectionLen(other) == s.Len()
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}
