package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrWireType is returned when a known field arrives with a wire type that
// cannot carry it.
var ErrWireType = errors.New("unexpected wire type")

type encoder struct {
	buf []byte
}

func (e *encoder) tag(num protowire.Number, typ protowire.Type) {
	e.buf = protowire.AppendTag(e.buf, num, typ)
}

// varint writes v when non-zero.
func (e *encoder) varint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.tag(num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
}

func (e *encoder) optDouble(num protowire.Number, v *float64) {
	if v == nil {
		return
	}
	e.tag(num, protowire.Fixed64Type)
	e.buf = protowire.AppendFixed64(e.buf, math.Float64bits(*v))
}

// double writes v when non-zero.
func (e *encoder) double(num protowire.Number, v float64) {
	if v == 0 && !math.Signbit(v) {
		return
	}
	e.optDouble(num, &v)
}

func (e *encoder) optUint32(num protowire.Number, v *uint32) {
	if v == nil {
		return
	}
	e.tag(num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(*v))
}

func (e *encoder) optBool(num protowire.Number, v *bool) {
	if v == nil {
		return
	}
	e.tag(num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, protowire.EncodeBool(*v))
}

func optEnum[T ~int32](e *encoder, num protowire.Number, v *T) {
	if v == nil {
		return
	}
	e.tag(num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(int64(*v)))
}

// packed writes a packed repeated varint field. Nothing is written for an
// empty list.
func (e *encoder) packed(num protowire.Number, vals []uint64) {
	if len(vals) == 0 {
		return
	}
	var body []byte
	for _, v := range vals {
		body = protowire.AppendVarint(body, v)
	}
	e.tag(num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, body)
}

// message writes a length-delimited sub-message. An empty body is still
// written so a present-but-empty message stays present.
func (e *encoder) message(num protowire.Number, fn func(*encoder)) {
	var sub encoder
	fn(&sub)
	e.tag(num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, sub.buf)
}

// field is one decoded tag together with exactly the bytes of its value.
type field struct {
	msg string
	num protowire.Number
	typ protowire.Type
	val []byte
}

func (f field) errorf(err error) error {
	return fmt.Errorf("%s field %d: %w", f.msg, f.num, err)
}

func (f field) want(typ protowire.Type) error {
	if f.typ != typ {
		return f.errorf(fmt.Errorf("%w %d, want %d", ErrWireType, f.typ, typ))
	}
	return nil
}

func (f field) uint64() (uint64, error) {
	if err := f.want(protowire.VarintType); err != nil {
		return 0, err
	}
	v, n := protowire.ConsumeVarint(f.val)
	if n < 0 {
		return 0, f.errorf(protowire.ParseError(n))
	}
	return v, nil
}

func (f field) uint32() (*uint32, error) {
	v, err := f.uint64()
	if err != nil {
		return nil, err
	}
	u := uint32(v)
	return &u, nil
}

func (f field) int64() (int64, error) {
	v, err := f.uint64()
	return int64(v), err
}

func (f field) bool() (*bool, error) {
	v, err := f.uint64()
	if err != nil {
		return nil, err
	}
	b := protowire.DecodeBool(v)
	return &b, nil
}

func fieldEnum[T ~int32](f field) (*T, error) {
	v, err := f.uint64()
	if err != nil {
		return nil, err
	}
	e := T(int32(v))
	return &e, nil
}

func (f field) double() (*float64, error) {
	if err := f.want(protowire.Fixed64Type); err != nil {
		return nil, err
	}
	v, n := protowire.ConsumeFixed64(f.val)
	if n < 0 {
		return nil, f.errorf(protowire.ParseError(n))
	}
	d := math.Float64frombits(v)
	return &d, nil
}

func (f field) bytes() ([]byte, error) {
	if err := f.want(protowire.BytesType); err != nil {
		return nil, err
	}
	v, n := protowire.ConsumeBytes(f.val)
	if n < 0 {
		return nil, f.errorf(protowire.ParseError(n))
	}
	return v, nil
}

// varints reads one element of a repeated varint field, accepting either a
// single unpacked value or a packed run.
func (f field) varints() ([]uint64, error) {
	if f.typ == protowire.VarintType {
		v, err := f.uint64()
		if err != nil {
			return nil, err
		}
		return []uint64{v}, nil
	}
	b, err := f.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(b))
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, f.errorf(protowire.ParseError(n))
		}
		out = append(out, v)
		b = b[n:]
	}
	return out, nil
}

// message decodes a sub-message field with fn.
func (f field) message(fn func([]byte) error) error {
	b, err := f.bytes()
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return f.errorf(err)
	}
	return nil
}

// walk calls fn for every field in b. Fields fn does not recognise are
// simply ignored by it; their values have already been consumed.
func walk(msg string, b []byte, fn func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%s: %w", msg, protowire.ParseError(n))
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return fmt.Errorf("%s field %d: %w", msg, num, protowire.ParseError(m))
		}
		if err := fn(field{msg: msg, num: num, typ: typ, val: b[:m]}); err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}
