package negotiate

import (
	"fmt"
	"strconv"
)

// NarrowingKind says how a granted field differs from its request.
type NarrowingKind string

const (
	// Substituted fields hold the simulator's best available value.
	Substituted NarrowingKind = "substituted"
	// Dropped fields are unpopulated in the grant: cannot provide.
	Dropped NarrowingKind = "dropped"
)

// Narrowing records one field the grant did not satisfy as requested.
type Narrowing struct {
	Field     string        `json:"field"`
	Kind      NarrowingKind `json:"kind"`
	Requested string        `json:"requested"`
	Granted   string        `json:"granted,omitempty"`
}

func (n Narrowing) String() string {
	if n.Kind == Dropped {
		return fmt.Sprintf("%s: dropped (requested %s)", n.Field, n.Requested)
	}
	return fmt.Sprintf("%s: %s -> %s", n.Field, n.Requested, n.Granted)
}

// report collects narrowings under a field path prefix. Each detector
// goroutine owns its own report; they are merged after the join.
type report struct {
	prefix string
	items  []Narrowing
}

func (r *report) field(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + "." + name
}

func (r *report) substituted(name, requested, granted string) {
	r.items = append(r.items, Narrowing{Field: r.field(name), Kind: Substituted, Requested: requested, Granted: granted})
}

func (r *report) dropped(name, requested string) {
	r.items = append(r.items, Narrowing{Field: r.field(name), Kind: Dropped, Requested: requested})
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func fmtUint(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

// clampFloat grants req, or max when req exceeds it.
func (r *report) clampFloat(name string, req, max *float64) *float64 {
	if req == nil {
		return nil
	}
	v := *req
	if max != nil && v > *max {
		r.substituted(name, fmtFloat(v), fmtFloat(*max))
		v = *max
	}
	return &v
}

// clampUint grants req, or max when req exceeds it.
func (r *report) clampUint(name string, req, max *uint32) *uint32 {
	if req == nil {
		return nil
	}
	v := *req
	if max != nil && v > *max {
		r.substituted(name, fmtUint(v), fmtUint(*max))
		v = *max
	}
	return &v
}
