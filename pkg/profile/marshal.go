package profile

import (
	json "github.com/goccy/go-json"
)

// The wire shape of a node is keyed by its tag: every node carries "type"
// and "count", discrete nodes add "unique" and "values", objects add
// "properties", arrays an optional "items", ambiguous nodes "types".

func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Type `json:"type"`
		Count int  `json:"count"`
	}{s.Tag, s.N})
}

func (d *Discrete) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Type           `json:"type"`
		Count  int            `json:"count"`
		Unique int            `json:"unique"`
		Values map[string]int `json:"values"`
	}{d.Tag, d.N, d.Unique(), d.Values})
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       Type                `json:"type"`
		Count      int                 `json:"count"`
		Properties map[string]Property `json:"properties"`
	}{TypeObject, o.N, o.Fields})
}

func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Type     `json:"type"`
		Count int      `json:"count"`
		Items Property `json:"items,omitempty"`
	}{TypeArray, a.N, a.Items})
}

func (a *Ambiguous) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Type       `json:"type"`
		Count int        `json:"count"`
		Types []Property `json:"types"`
	}{TypeAmbiguous, a.N, a.Alts})
}
