package filter

import "encoding/json"

// filterJSON mirrors Filter's four-way sum type for serialization; Filter
// itself keeps its fields unexported so callers always go through the
// And/Or/Not/Leaf constructors.
type filterJSON struct {
	And  []Filter `json:"and,omitempty"`
	Or   []Filter `json:"or,omitempty"`
	Not  *Filter  `json:"not,omitempty"`
	Leaf *Term    `json:"leaf,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterJSON{And: f.and, Or: f.or, Not: f.not, Leaf: f.leaf})
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw filterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.and = raw.And
	f.or = raw.Or
	f.not = raw.Not
	f.leaf = raw.Leaf
	return nil
}
