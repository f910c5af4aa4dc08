// Package scorestore persists the score aggregated over every simulator run.
//
// The aggregate lives in a single msgpack file that is read at startup,
// merged with the finished run and rewritten atomically. A missing file is an
// empty aggregate; so is an unreadable or corrupt one, with the error
// reported to the caller.
package scorestore

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/tinylib/msgp/msgp"
)

const formatVersion = 1

// MaxRecentRuns bounds the run IDs kept in the aggregate.
const MaxRecentRuns = 16

// Aggregate is the cross-run score.
type Aggregate struct {
	Score *statistics.Score
	// Runs counts every run merged so far.
	Runs int
	// Recent holds the latest run IDs, oldest first.
	Recent []uuid.UUID
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{Score: statistics.NewScore()}
}

// Merge folds a finished run into the aggregate. On overflow the aggregate
// keeps its previous contents and the error is returned.
func (a *Aggregate) Merge(score *statistics.Score, runID uuid.UUID) error {
	if err := a.Score.Merge(score); err != nil {
		return fmt.Errorf("merge run %s: %w", runID, err)
	}
	a.Runs++
	a.Recent = append(a.Recent, runID)
	if n := len(a.Recent); n > MaxRecentRuns {
		a.Recent = append([]uuid.UUID(nil), a.Recent[n-MaxRecentRuns:]...)
	}
	return nil
}

// Summary renders the aggregate totals and streak report.
func (a *Aggregate) Summary() string {
	return fmt.Sprintf("Totals on all %d runs: %s%s", a.Runs, a.Score.Scoreboard(), a.Score.StreakReport())
}

// MarshalMsg implements msgp.Marshaler.
func (a *Aggregate) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 4)
	b = msgp.AppendInt(b, formatVersion)
	b = msgp.AppendInt(b, a.Runs)
	b = msgp.AppendArrayHeader(b, uint32(len(a.Recent)))
	for _, id := range a.Recent {
		b = msgp.AppendBytes(b, id[:])
	}
	return a.Score.MarshalMsg(b)
}

// UnmarshalMsg implements msgp.Unmarshaler.
func (a *Aggregate) UnmarshalMsg(b []byte) ([]byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if n != 4 {
		return b, fmt.Errorf("aggregate has %d fields: %w", n, statistics.ErrCorrupt)
	}
	version, b, err := msgp.ReadIntBytes(b)
	if err != nil {
		return b, err
	}
	if version != formatVersion {
		return b, fmt.Errorf("unsupported aggregate version %d: %w", version, statistics.ErrCorrupt)
	}
	runs, b, err := msgp.ReadIntBytes(b)
	if err != nil {
		return b, err
	}
	if runs < 0 {
		return b, fmt.Errorf("negative run count: %w", statistics.ErrCorrupt)
	}
	count, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if count > MaxRecentRuns {
		return b, fmt.Errorf("%d recent runs: %w", count, statistics.ErrCorrupt)
	}
	recent := make([]uuid.UUID, 0, count)
	for i := uint32(0); i < count; i++ {
		var raw []byte
		if raw, b, err = msgp.ReadBytesZC(b); err != nil {
			return b, err
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return b, fmt.Errorf("run id: %w", statistics.ErrCorrupt)
		}
		recent = append(recent, id)
	}
	score := statistics.NewScore()
	if b, err = score.UnmarshalMsg(b); err != nil {
		return b, err
	}

	a.Runs = runs
	a.Recent = recent
	a.Score = score
	return b, nil
}

// Load reads the aggregate at path. It always returns a usable aggregate: a
// missing file yields an empty one with no error, an unreadable or corrupt
// file yields an empty one together with the reason.
func Load(path string) (*Aggregate, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewAggregate(), nil
	}
	if err != nil {
		return NewAggregate(), fmt.Errorf("read %s: %w", path, err)
	}

	agg := NewAggregate()
	rest, err := agg.UnmarshalMsg(data)
	if err == nil && len(rest) > 0 {
		err = fmt.Errorf("%d trailing bytes: %w", len(rest), statistics.ErrCorrupt)
	}
	if err != nil {
		return NewAggregate(), fmt.Errorf("decode %s: %w", path, err)
	}
	return agg, nil
}

// Save atomically replaces the file at path with agg.
func Save(path string, agg *Aggregate) error {
	data, err := agg.MarshalMsg(nil)
	if err != nil {
		return fmt.Errorf("encode aggregate: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
