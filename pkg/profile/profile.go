package profile

import (
	"io"

	json "github.com/goccy/go-json"
)

// Options bound the two memory/precision trade-offs of a profiling run.
type Options struct {
	// TextLimit is the string length at which values stop being discrete
	// strings (default DefaultTextLimit).
	TextLimit int
	// DiscreteLimit is the cardinality above which Finalize drops a
	// frequency table (default DefaultDiscreteLimit).
	DiscreteLimit int
}

// Profile is the running aggregate over every document observed so far:
// the merged schema tree, a document counter, and, once finalized, the
// ambiguity score of the final tree. A profile is built by one
// single-threaded pass; it is not safe for concurrent observation.
type Profile struct {
	Schema    Property
	Documents int
	Ambiguous int

	opts Options
}

// New returns an empty profile. Schema stays nil until the first document
// is observed.
func New(opts Options) *Profile {
	return &Profile{opts: opts}
}

// Observe classifies one document and merges it into the profile. The
// first document's tree becomes the schema root; later documents are
// merged in, replacing the root when a cross-type merge re-roots it as
// ambiguous. An error means the document could not be classified and
// leaves the profile unusable for further observation.
func (p *Profile) Observe(document any) error {
	node, err := Cast(document, p.opts.TextLimit)
	if err != nil {
		return err
	}
	p.Documents++

	if p.Schema == nil {
		p.Schema = node
		return nil
	}
	merged, err := Merge(p.Schema, node)
	if err != nil {
		return err
	}
	p.Schema = merged
	return nil
}

// Absorb merges another profile built over a disjoint partition of the
// same dataset into this one. Both profiles must still be unfinalized.
func (p *Profile) Absorb(other *Profile) error {
	p.Documents += other.Documents
	if other.Schema == nil {
		return nil
	}
	if p.Schema == nil {
		p.Schema = other.Schema
		return nil
	}
	merged, err := Merge(p.Schema, other.Schema)
	if err != nil {
		return err
	}
	p.Schema = merged
	return nil
}

// Finalize truncates sparse frequency tables and computes the ambiguity
// score. After Finalize the profile is immutable and ready to serialize.
func (p *Profile) Finalize() error {
	if p.Schema == nil {
		return nil
	}
	truncated, err := Truncate(p.Schema, p.opts.DiscreteLimit)
	if err != nil {
		return err
	}
	p.Schema = truncated
	p.Ambiguous = Ambiguity(p.Schema)
	return nil
}

// MarshalJSON serializes the profile in its wire shape.
func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Schema    Property `json:"schema"`
		Documents int      `json:"documents"`
		Ambiguous int      `json:"ambiguous"`
	}{p.Schema, p.Documents, p.Ambiguous})
}

// Dump writes the serialized profile to w.
func (p *Profile) Dump(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Ambiguity counts the unresolved-type sites in a finalized tree: each
// ambiguous node contributes one plus its alternatives' scores, container
// nodes pass their children's scores through, everything else is zero.
func Ambiguity(p Property) int {
	switch n := p.(type) {
	case *Ambiguous:
		score := 1
		for _, alt := range n.Alts {
			score += Ambiguity(alt)
		}
		return score
	case *Object:
		score := 0
		for _, child := range n.Fields {
			score += Ambiguity(child)
		}
		return score
	case *Array:
		if n.Items != nil {
			return Ambiguity(n.Items)
		}
	}
	return 0
}
