package negotiate

import "github.com/banshee-data/sensorview/internal/common"

// FirstUpdate returns the first real update instant for a sensor sampling
// with period cycle and phase offset, both measured from a virtual start of
// zero, in a simulation that really starts at start:
//
//	first = offset + ceil(max(0, start-offset) / cycle) * cycle
//
// i.e. the smallest offset + k*cycle (k >= 0) that is >= start. Arithmetic is
// done in integer nanoseconds so the result is exact. A non-positive cycle
// never repeats: the offset itself is returned when it is not before start,
// otherwise ok is false.
func FirstUpdate(cycle, offset, start common.Timestamp) (first common.Timestamp, ok bool) {
	t := cycle.Nanoseconds()
	o := offset.Nanoseconds()
	s := start.Nanoseconds()

	if t <= 0 {
		if o >= s {
			return common.TimestampFromNanos(o), true
		}
		return common.Timestamp{}, false
	}

	var k int64
	if d := s - o; d > 0 {
		k = (d + t - 1) / t
	}
	return common.TimestampFromNanos(o + k*t), true
}

// grantCycle picks the update period the simulator will use for a request.
// A request at or above the minimum is granted as is; a faster request is
// slowed to the smallest whole multiple of itself that meets the minimum,
// which keeps every granted instant on the requested grid.
func grantCycle(req common.Timestamp, min *common.Timestamp) (common.Timestamp, bool) {
	t := req.Nanoseconds()
	if t <= 0 {
		return common.Timestamp{}, false
	}
	if min == nil || t >= min.Nanoseconds() {
		return req.Normalize(), true
	}
	m := min.Nanoseconds()
	k := (m + t - 1) / t
	return common.TimestampFromNanos(k * t), true
}
