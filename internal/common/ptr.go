package common

// Helper functions to create pointers for optional fields.

func Float64(v float64) *float64 { return &v }
func Uint32(v uint32) *uint32    { return &v }
func Bool(v bool) *bool          { return &v }

// Float64Value returns *p, or def when p is nil.
func Float64Value(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Uint32Value returns *p, or def when p is nil.
func Uint32Value(p *uint32, def uint32) uint32 {
	if p == nil {
		return def
	}
	return *p
}

// CloneFloat64 returns a fresh pointer holding the same value, or nil.
func CloneFloat64(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloneUint32 returns a fresh pointer holding the same value, or nil.
func CloneUint32(p *uint32) *uint32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloneBool returns a fresh pointer holding the same value, or nil.
func CloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ClonePtr copies a pointed-to value struct. Only safe for types without
// reference fields.
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
