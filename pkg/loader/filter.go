package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/itchyny/gojq"
)

// Filter wraps a loader with a jq program applied to every document
// before it reaches the consumer. A program may drop a document (no
// output), pass it through transformed, or emit several documents from
// one input. A program error on any document aborts the sequence.
type Filter struct {
	src   Loader
	code  *gojq.Code
	queue []any
	count int
}

// NewFilter compiles program and applies it to every document src yields.
func NewFilter(src Loader, program string) (*Filter, error) {
	parsed, err := gojq.Parse(program)
	if err != nil {
		return nil, fmt.Errorf("invalid jq filter: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("compiling jq filter: %w", err)
	}
	return &Filter{src: src, code: code}, nil
}

func (f *Filter) Count() int { return f.count }

func (f *Filter) Next(ctx context.Context) (any, error) {
	for {
		if len(f.queue) > 0 {
			doc := f.queue[0]
			f.queue = f.queue[1:]
			f.count++
			return doc, nil
		}

		doc, err := f.src.Next(ctx)
		if err != nil {
			return nil, err
		}

		iter := f.code.RunWithContext(ctx, normalize(doc))
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, isErr := v.(error); isErr {
				return nil, fmt.Errorf("jq filter: %w", err)
			}
			f.queue = append(f.queue, v)
		}
		// Zero outputs means the program dropped this document; pull the
		// next one.
	}
}

// normalize converts decoder output into the value shapes the jq runtime
// accepts: json.Number becomes int, *big.Int, or float64.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.Atoi(x.String()); err == nil {
			return i
		} else if errors.Is(err, strconv.ErrRange) {
			if b, ok := new(big.Int).SetString(x.String(), 10); ok {
				return b
			}
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
