package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/banshee-data/sensorview/internal/common"
)

func putIdentifier(e *encoder, num protowire.Number, id common.Identifier) {
	e.message(num, func(s *encoder) { s.varint(1, id.Value) })
}

func putOptIdentifier(e *encoder, num protowire.Number, id *common.Identifier) {
	if id != nil {
		putIdentifier(e, num, *id)
	}
}

func getIdentifier(b []byte, id *common.Identifier) error {
	return walk("Identifier", b, func(f field) (err error) {
		if f.num == 1 {
			id.Value, err = f.uint64()
		}
		return err
	})
}

func putTimestamp(e *encoder, num protowire.Number, t *common.Timestamp) {
	if t == nil {
		return
	}
	e.message(num, func(s *encoder) {
		s.varint(1, uint64(t.Seconds))
		s.varint(2, uint64(t.Nanos))
	})
}

func getTimestamp(b []byte, t *common.Timestamp) error {
	return walk("Timestamp", b, func(f field) error {
		switch f.num {
		case 1:
			v, err := f.int64()
			t.Seconds = v
			return err
		case 2:
			v, err := f.uint32()
			if v != nil {
				t.Nanos = *v
			}
			return err
		}
		return nil
	})
}

func putVector(e *encoder, num protowire.Number, v common.Vector3d) {
	e.message(num, func(s *encoder) {
		s.double(1, v.X)
		s.double(2, v.Y)
		s.double(3, v.Z)
	})
}

func putOptVector(e *encoder, num protowire.Number, v *common.Vector3d) {
	if v != nil {
		putVector(e, num, *v)
	}
}

// getFloat assigns a decoded double to dst.
func getFloat(f field, dst *float64) error {
	v, err := f.double()
	if err != nil {
		return err
	}
	*dst = *v
	return nil
}

func getVector(b []byte, v *common.Vector3d) error {
	return walk("Vector3d", b, func(f field) error {
		switch f.num {
		case 1:
			return getFloat(f, &v.X)
		case 2:
			return getFloat(f, &v.Y)
		case 3:
			return getFloat(f, &v.Z)
		}
		return nil
	})
}

func putMountingPosition(e *encoder, num protowire.Number, m *common.MountingPosition) {
	if m == nil {
		return
	}
	e.message(num, func(s *encoder) {
		putOptVector(s, 1, m.Position)
		if o := m.Orientation; o != nil {
			s.message(2, func(s *encoder) {
				s.double(1, o.Roll)
				s.double(2, o.Pitch)
				s.double(3, o.Yaw)
			})
		}
	})
}

func getMountingPosition(b []byte, m *common.MountingPosition) error {
	return walk("MountingPosition", b, func(f field) error {
		switch f.num {
		case 1:
			return sub(f, &m.Position, getVector)
		case 2:
			return sub(f, &m.Orientation, getOrientation)
		}
		return nil
	})
}

func getOrientation(b []byte, o *common.Orientation3d) error {
	return walk("Orientation3d", b, func(f field) error {
		switch f.num {
		case 1:
			return getFloat(f, &o.Roll)
		case 2:
			return getFloat(f, &o.Pitch)
		case 3:
			return getFloat(f, &o.Yaw)
		}
		return nil
	})
}

func putVersion(e *encoder, num protowire.Number, v *common.InterfaceVersion) {
	if v == nil {
		return
	}
	e.message(num, func(s *encoder) {
		s.varint(1, uint64(v.Major))
		s.varint(2, uint64(v.Minor))
		s.varint(3, uint64(v.Patch))
	})
}

func getVersion(b []byte, v *common.InterfaceVersion) error {
	return walk("InterfaceVersion", b, func(f field) error {
		var dst *uint32
		switch f.num {
		case 1:
			dst = &v.Major
		case 2:
			dst = &v.Minor
		case 3:
			dst = &v.Patch
		default:
			return nil
		}
		u, err := f.uint32()
		if u != nil {
			*dst = *u
		}
		return err
	})
}

// sub decodes a singular sub-message field into a pointer-valued
// destination. A repeated occurrence of the tag merges into the value
// decoded so far, as protobuf parsers do.
func sub[T any](f field, dst **T, get func([]byte, *T) error) error {
	return f.message(func(b []byte) error {
		if *dst == nil {
			*dst = new(T)
		}
		return get(b, *dst)
	})
}

func appendIdentifier(f field, dst *[]common.Identifier) error {
	return f.message(func(b []byte) error {
		var id common.Identifier
		if err := getIdentifier(b, &id); err != nil {
			return err
		}
		*dst = append(*dst, id)
		return nil
	})
}

func setDouble(f field, dst **float64) (err error) {
	*dst, err = f.double()
	return err
}

func setUint32(f field, dst **uint32) (err error) {
	*dst, err = f.uint32()
	return err
}
