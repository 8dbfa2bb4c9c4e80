package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/sensorview/internal/detection"
	"github.com/banshee-data/sensorview/internal/wire"
)

// DetectionCycle is one persisted logical detection output.
type DetectionCycle struct {
	CycleID    string                          `json:"cycle_id"`
	Data       *detection.LogicalDetectionData `json:"data"`
	RecordedAt time.Time                       `json:"recorded_at"`
}

// RecordDetections validates and persists one cycle of logical detection
// data. Data breaking the valid-count or range invariants is rejected.
func (l *Ledger) RecordDetections(ctx context.Context, data *detection.LogicalDetectionData) (*DetectionCycle, error) {
	if data == nil {
		return nil, fmt.Errorf("recording detections: no data")
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("recording detections: %w", err)
	}

	c := &DetectionCycle{
		CycleID:    uuid.New().String(),
		Data:       data.Clone(),
		RecordedAt: l.clock.Now(),
	}

	var (
		detectionTime interface{}
		qualifier     interface{}
		sensors       interface{}
	)
	numValid := len(data.LogicalDetection)
	if h := data.Header; h != nil {
		if h.LogicalDetectionTime != nil {
			detectionTime = h.LogicalDetectionTime.Nanoseconds()
		}
		if h.DataQualifier != nil {
			qualifier = h.DataQualifier.String()
		}
		if h.NumberOfValidLogicalDetections != nil {
			numValid = int(*h.NumberOfValidLogicalDetections)
		}
		if len(h.SensorID) > 0 {
			ids := make([]string, len(h.SensorID))
			for i, id := range h.SensorID {
				ids[i] = strconv.FormatUint(id.Value, 10)
			}
			sensors = strings.Join(ids, ",")
		}
	}

	err := l.retryOnBusy(ctx, func() error {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO detection_cycles (
				cycle_id, detection_time_ns, data_qualifier, num_valid, num_total,
				sensor_ids, payload, recorded_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.CycleID, detectionTime, qualifier, numValid, len(data.LogicalDetection),
			sensors, wire.MarshalLogicalDetectionData(data), c.RecordedAt.UnixNano(),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inserting detection cycle %s: %w", c.CycleID, err)
	}
	return c, nil
}

// DetectionCycles returns the most recent cycles by detection time, newest
// first. A non-positive limit returns all of them.
func (l *Ledger) DetectionCycles(ctx context.Context, limit int) ([]*DetectionCycle, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT cycle_id, payload, recorded_at FROM detection_cycles
		ORDER BY detection_time_ns DESC, recorded_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying detection cycles: %w", err)
	}
	defer rows.Close()

	var out []*DetectionCycle
	for rows.Next() {
		var (
			c          DetectionCycle
			payload    []byte
			recordedAt int64
		)
		if err := rows.Scan(&c.CycleID, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning detection cycle: %w", err)
		}
		if c.Data, err = wire.UnmarshalLogicalDetectionData(payload); err != nil {
			return nil, fmt.Errorf("detection cycle %s: %w", c.CycleID, err)
		}
		c.RecordedAt = time.Unix(0, recordedAt)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DetectionCycleCount returns the number of stored cycles.
func (l *Ledger) DetectionCycleCount(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM detection_cycles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting detection cycles: %w", err)
	}
	return n, nil
}

