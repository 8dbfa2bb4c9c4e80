package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/negotiate"
	"github.com/banshee-data/sensorview/internal/sensorview"
	"github.com/banshee-data/sensorview/internal/wire"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Round is one persisted negotiation: what the sensor model asked for, what
// the simulator granted and how the two differ.
type Round struct {
	RoundID     string                              `json:"round_id"`
	Requested   *sensorview.SensorViewConfiguration `json:"requested"`
	Granted     *sensorview.SensorViewConfiguration `json:"granted"`
	Narrowings  []negotiate.Narrowing               `json:"narrowings,omitempty"`
	FirstUpdate *common.Timestamp                   `json:"first_update,omitempty"`
	RecordedAt  time.Time                           `json:"recorded_at"`
}

// SensorID returns the virtual sensor id of the round, taken from the grant
// and falling back to the request.
func (r *Round) SensorID() *common.Identifier {
	if r.Granted != nil && r.Granted.SensorID != nil {
		return r.Granted.SensorID
	}
	if r.Requested != nil {
		return r.Requested.SensorID
	}
	return nil
}

// Identifiers span the full uint64 range; SQLite integers are signed, so
// the bit pattern is stored as int64.
func sensorColumn(id *common.Identifier) interface{} {
	if id == nil {
		return nil
	}
	return int64(id.Value)
}

// RecordRound persists r. If RoundID is empty a UUID is generated; a zero
// RecordedAt is set from the ledger clock.
func (l *Ledger) RecordRound(ctx context.Context, r *Round) error {
	if r.Granted == nil {
		return fmt.Errorf("recording round: granted configuration is required")
	}
	if r.RoundID == "" {
		r.RoundID = uuid.New().String()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = l.clock.Now()
	}

	var narrowings interface{}
	if len(r.Narrowings) > 0 {
		b, err := json.Marshal(r.Narrowings)
		if err != nil {
			return fmt.Errorf("encoding narrowings for round %s: %w", r.RoundID, err)
		}
		narrowings = string(b)
	}
	var firstUpdate interface{}
	if r.FirstUpdate != nil {
		firstUpdate = r.FirstUpdate.Nanoseconds()
	}

	err := l.retryOnBusy(ctx, func() error {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO negotiation_rounds (
				round_id, sensor_id, request_blob, granted_blob,
				narrowings_json, first_update_ns, recorded_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.RoundID, sensorColumn(r.SensorID()),
			wire.MarshalSensorViewConfiguration(r.Requested),
			wire.MarshalSensorViewConfiguration(r.Granted),
			narrowings, firstUpdate, r.RecordedAt.UnixNano(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("inserting round %s: %w", r.RoundID, err)
	}
	logf("recorded round %s for sensor %v (%d narrowing(s))", r.RoundID, r.SensorID(), len(r.Narrowings))
	return nil
}

const roundColumns = `round_id, request_blob, granted_blob, narrowings_json, first_update_ns, recorded_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRound(row rowScanner) (*Round, error) {
	var (
		r           Round
		request     []byte
		granted     []byte
		narrowings  sql.NullString
		firstUpdate sql.NullInt64
		recordedAt  int64
	)
	if err := row.Scan(&r.RoundID, &request, &granted, &narrowings, &firstUpdate, &recordedAt); err != nil {
		return nil, err
	}

	var err error
	if r.Requested, err = wire.UnmarshalSensorViewConfiguration(request); err != nil {
		return nil, fmt.Errorf("round %s request: %w", r.RoundID, err)
	}
	if r.Granted, err = wire.UnmarshalSensorViewConfiguration(granted); err != nil {
		return nil, fmt.Errorf("round %s grant: %w", r.RoundID, err)
	}
	if narrowings.Valid {
		if err := json.Unmarshal([]byte(narrowings.String), &r.Narrowings); err != nil {
			return nil, fmt.Errorf("round %s narrowings: %w", r.RoundID, err)
		}
	}
	if firstUpdate.Valid {
		ts := common.TimestampFromNanos(firstUpdate.Int64)
		r.FirstUpdate = &ts
	}
	r.RecordedAt = time.Unix(0, recordedAt)
	return &r, nil
}

// Round returns the round with the given id, or ErrNotFound.
func (l *Ledger) Round(ctx context.Context, roundID string) (*Round, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT `+roundColumns+` FROM negotiation_rounds WHERE round_id = ?`, roundID)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("round %s: %w", roundID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading round %s: %w", roundID, err)
	}
	return r, nil
}

// RoundsForSensor returns every round recorded for a virtual sensor, oldest
// first.
func (l *Ledger) RoundsForSensor(ctx context.Context, sensorID common.Identifier) ([]*Round, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+roundColumns+` FROM negotiation_rounds
		 WHERE sensor_id = ? ORDER BY recorded_at ASC, round_id ASC`,
		sensorColumn(&sensorID))
	if err != nil {
		return nil, fmt.Errorf("querying rounds for sensor %s: %w", sensorID, err)
	}
	defer rows.Close()

	var out []*Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
