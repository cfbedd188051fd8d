package costs

import (
	"fmt"
	"strconv"
	"strings"
)

// Vector is an ordered sequence of (EventKind, counter) pairs. Its schema —
// the order and set of event kinds — is fixed at construction from a
// profiler output file's "events:" header line. Two vectors are only
// directly comparable if they share a schema.
type Vector struct {
	schema []EventKind
	values []uint64
}

// NewVector builds an empty vector with the given schema. Schema must
// include Ir, since a callgrind cost line always reports instructions
// first.
func NewVector(schema []EventKind) (*Vector, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("costs: empty schema")
	}
	if schema[0] != Ir {
		return nil, fmt.Errorf("costs: schema must begin with Ir, got %s", schema[0])
	}
	return &Vector{
		schema: append([]EventKind(nil), schema...),
		values: make([]uint64, len(schema)),
	}, nil
}

// ParseSchema turns the whitespace-separated tag list from an "events:"
// header line into a schema, skipping unrecognized tags rather than
// failing the whole parse — the format is explicitly extensible.
func ParseSchema(header string) []EventKind {
	fields := strings.Fields(header)
	schema := make([]EventKind, 0, len(fields))
	for _, f := range fields {
		if kind, ok := ParseEventKind(f); ok {
			schema = append(schema, kind)
		}
	}
	return schema
}

// Schema returns the event kinds in column order.
func (v *Vector) Schema() []EventKind {
	return append([]EventKind(nil), v.schema...)
}

// Get returns the counter for kind and whether it is present in this
// vector's schema.
func (v *Vector) Get(kind EventKind) (uint64, bool) {
	for i, k := range v.schema {
		if k == kind {
			return v.values[i], true
		}
	}
	return 0, false
}

// MustGet returns the counter for kind, or zero if absent. Used by the
// cost model, where a missing optional counter is legitimately zero.
func (v *Vector) MustGet(kind EventKind) uint64 {
	val, _ := v.Get(kind)
	return val
}

// AddRow accumulates a whitespace-separated cost line's counters
// column-wise, after the caller has already stripped any leading position
// columns. Per the callgrind format, a row with fewer columns than the
// schema has its missing trailing columns treated as zero.
func (v *Vector) AddRow(fields []string) error {
	for i := 0; i < len(fields) && i < len(v.values); i++ {
		n, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return fmt.Errorf("costs: invalid counter %q: %w", fields[i], err)
		}
		v.values[i] += n
	}
	return nil
}

// Add accumulates another vector's counters into this one, elementwise.
// The two vectors must share a schema.
func (v *Vector) Add(other *Vector) error {
	if len(v.schema) != len(other.schema) {
		return fmt.Errorf("costs: schema length mismatch: %d vs %d", len(v.schema), len(other.schema))
	}
	for i := range v.schema {
		if v.schema[i] != other.schema[i] {
			return fmt.Errorf("costs: schema mismatch at column %d: %s vs %s", i, v.schema[i], other.schema[i])
		}
		v.values[i] += other.values[i]
	}
	return nil
}

// Clone returns an independent copy.
func (v *Vector) Clone() *Vector {
	return &Vector{
		schema: append([]EventKind(nil), v.schema...),
		values: append([]uint64(nil), v.values...),
	}
}
