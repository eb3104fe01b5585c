package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// DefaultTextLimit is the string length at which a value stops being a
// discrete string and becomes free text (or a blob if it is base64).
const DefaultTextLimit = 256

// Cast classifies one raw value into a freshly built property tree with
// count 1 at every node. Values are the dynamic shapes produced by JSON
// and YAML decoding (scalars, []any, map[string]any); numbers decoded as
// json.Number keep their integral/floating distinction from the literal.
//
// Integral numbers and short strings become Discrete nodes seeded with a
// single frequency entry: integers tend to be identifiers or categories
// where a value distribution is informative, while floating-point numbers
// are treated as continuous measurements and only counted. A textLimit
// of zero or less falls back to DefaultTextLimit.
func Cast(value any, textLimit int) (Property, error) {
	if textLimit <= 0 {
		textLimit = DefaultTextLimit
	}

	switch v := value.(type) {
	case nil:
		return &Scalar{Tag: TypeNull, N: 1}, nil

	case bool:
		// Checked before the numeric cases: a boolean is never a number.
		return &Scalar{Tag: TypeBoolean, N: 1}, nil

	case json.Number:
		if _, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return discreteNumber(v.String()), nil
		}
		if _, err := v.Float64(); err != nil {
			return nil, fmt.Errorf("%w: malformed number literal %q", ErrCannotClassify, v.String())
		}
		return &Scalar{Tag: TypeNumber, N: 1}, nil

	case int:
		return discreteNumber(strconv.Itoa(v)), nil
	case int64:
		return discreteNumber(strconv.FormatInt(v, 10)), nil
	case uint64:
		return discreteNumber(strconv.FormatUint(v, 10)), nil
	case *big.Int:
		return discreteNumber(v.String()), nil

	case float64:
		// Whole values inside the exact-integer range of a float64 count
		// as integral; everything else is a continuous measurement.
		if math.Trunc(v) == v && math.Abs(v) < 1<<53 {
			return discreteNumber(strconv.FormatInt(int64(v), 10)), nil
		}
		return &Scalar{Tag: TypeNumber, N: 1}, nil

	case string:
		if len(v) < textLimit {
			return &Discrete{Tag: TypeString, N: 1, Values: map[string]int{v: 1}}, nil
		}
		if isBase64(v) {
			return &Scalar{Tag: TypeBlob, N: 1}, nil
		}
		return &Scalar{Tag: TypeText, N: 1}, nil

	case []byte:
		return &Scalar{Tag: TypeBlob, N: 1}, nil

	case map[string]any:
		fields := make(map[string]Property, len(v))
		for name, raw := range v {
			child, err := Cast(raw, textLimit)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = child
		}
		return &Object{N: 1, Fields: fields}, nil

	case []any:
		return castArray(v, textLimit)
	}

	return nil, fmt.Errorf("%w: unsupported value type %T", ErrCannotClassify, value)
}

// castArray classifies every element and folds the element nodes into one
// generalized items node. The array node itself counts one observation
// regardless of element count; an empty array yields no items node.
func castArray(elems []any, textLimit int) (Property, error) {
	var items Property
	for i, raw := range elems {
		node, err := Cast(raw, textLimit)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if items == nil {
			items = node
			continue
		}
		items, err = Merge(items, node)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return &Array{N: 1, Items: items}, nil
}

func discreteNumber(literal string) *Discrete {
	return &Discrete{Tag: TypeNumber, N: 1, Values: map[string]int{literal: 1}}
}
