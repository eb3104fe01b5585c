package profile

import (
	"strconv"
	"testing"
)

func discreteWithCardinality(tag Type, n int) *Discrete {
	values := make(map[string]int, n)
	for i := 0; i < n; i++ {
		values[strconv.Itoa(i)] = 1
	}
	return &Discrete{Tag: tag, N: n, Values: values}
}

func TestTruncate_DegradesAboveLimit(t *testing.T) {
	got, err := Truncate(discreteWithCardinality(TypeNumber, 51), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Scalar{Tag: TypeNumber, N: 51}
	if !Equal(got, want) {
		t.Errorf("truncate = %#v, want %#v", got, want)
	}
}

func TestTruncate_NoopAtOrBelowLimit(t *testing.T) {
	for _, n := range []int{1, 49, 50} {
		before := discreteWithCardinality(TypeString, n)
		got, err := Truncate(discreteWithCardinality(TypeString, n), 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !Equal(got, before) {
			t.Errorf("cardinality %d: truncate was not a no-op", n)
		}
	}
}

func TestTruncate_Recurses(t *testing.T) {
	tree := &Object{N: 5, Fields: map[string]Property{
		"wide":   discreteWithCardinality(TypeString, 10),
		"nested": &Array{N: 5, Items: discreteWithCardinality(TypeNumber, 10)},
		"plain":  &Scalar{Tag: TypeBoolean, N: 5},
	}}
	got, err := Truncate(tree, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Object{N: 5, Fields: map[string]Property{
		"wide":   &Scalar{Tag: TypeString, N: 10},
		"nested": &Array{N: 5, Items: &Scalar{Tag: TypeNumber, N: 10}},
		"plain":  &Scalar{Tag: TypeBoolean, N: 5},
	}}
	if !Equal(got, want) {
		t.Errorf("truncate = %#v, want %#v", got, want)
	}
}

func TestTruncate_AmbiguousAlternatives(t *testing.T) {
	tree := &Ambiguous{N: 12, Alts: []Property{
		discreteWithCardinality(TypeNumber, 10),
		&Scalar{Tag: TypeText, N: 2},
	}}
	got, err := Truncate(tree, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Ambiguous{N: 12, Alts: []Property{
		&Scalar{Tag: TypeNumber, N: 10},
		&Scalar{Tag: TypeText, N: 2},
	}}
	if !Equal(got, want) {
		t.Errorf("truncate = %#v, want %#v", got, want)
	}
}

// An externally built ambiguous node can hold two alternatives that share
// a tag after degradation; truncation folds them together instead of
// failing, since the merged node still describes the observations.
func TestTruncate_FoldsCollidingAlternatives(t *testing.T) {
	tree := &Ambiguous{N: 12}
	tree.Alts = []Property{
		discreteWithCardinality(TypeNumber, 10),
		&Scalar{Tag: TypeNumber, N: 2},
	}
	got, err := Truncate(tree, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Ambiguous{N: 12, Alts: []Property{&Scalar{Tag: TypeNumber, N: 12}}}
	if !Equal(got, want) {
		t.Errorf("truncate = %#v, want %#v", got, want)
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	build := func() Property {
		return &Object{N: 8, Fields: map[string]Property{
			"wide":   discreteWithCardinality(TypeString, 10),
			"narrow": discreteWithCardinality(TypeNumber, 2),
			"mixed": &Ambiguous{N: 12, Alts: []Property{
				discreteWithCardinality(TypeNumber, 10),
				&Scalar{Tag: TypeBoolean, N: 2},
			}},
		}}
	}

	once, err := Truncate(build(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Truncate(build(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err = Truncate(twice, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(once, twice) {
		t.Error("truncate(truncate(T)) != truncate(T)")
	}
}
