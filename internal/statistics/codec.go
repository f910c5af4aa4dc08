package statistics

import (
	"errors"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

const codecVersion = 1

// ErrCorrupt is returned when decoded score data is internally inconsistent.
var ErrCorrupt = errors.New("corrupt score data")

var (
	_ msgp.Marshaler   = (*Score)(nil)
	_ msgp.Unmarshaler = (*Score)(nil)
)

// MarshalMsg appends the msgpack encoding of the score to b. The open streak
// is folded into the histogram, as Add does.
func (s *Score) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 5)
	b = msgp.AppendInt(b, codecVersion)
	b = appendTallyMsg(b, s.totals)

	b = msgp.AppendArrayHeader(b, UpCards*HardSlots)
	for up := 0; up < UpCards; up++ {
		for i := 0; i < HardSlots; i++ {
			b = appendTallyMsg(b, s.hard[up][i])
		}
	}
	b = msgp.AppendArrayHeader(b, UpCards*SoftSlots)
	for up := 0; up < UpCards; up++ {
		for i := 0; i < SoftSlots; i++ {
			b = appendTallyMsg(b, s.soft[up][i])
		}
	}

	h := s.Streaks()
	b = msgp.AppendArrayHeader(b, numOutcomes*MaxStreakLen)
	for o := 0; o < numOutcomes; o++ {
		for l := 0; l < MaxStreakLen; l++ {
			b = msgp.AppendInt(b, h[o][l])
		}
	}
	return b, nil
}

// UnmarshalMsg decodes a score from b, replacing the receiver's contents, and
// returns the remaining bytes.
func (s *Score) UnmarshalMsg(b []byte) ([]byte, error) {
	var out Score

	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if n != 5 {
		return b, fmt.Errorf("score has %d fields, want 5: %w", n, ErrCorrupt)
	}
	version, b, err := msgp.ReadIntBytes(b)
	if err != nil {
		return b, err
	}
	if version != codecVersion {
		return b, fmt.Errorf("unsupported score version %d: %w", version, ErrCorrupt)
	}
	if out.totals, b, err = readTallyMsg(b); err != nil {
		return b, err
	}

	if b, err = expectArray(b, UpCards*HardSlots, "hard"); err != nil {
		return b, err
	}
	for up := 0; up < UpCards; up++ {
		for i := 0; i < HardSlots; i++ {
			if out.hard[up][i], b, err = readTallyMsg(b); err != nil {
				return b, err
			}
		}
	}
	if b, err = expectArray(b, UpCards*SoftSlots, "soft"); err != nil {
		return b, err
	}
	for up := 0; up < UpCards; up++ {
		for i := 0; i < SoftSlots; i++ {
			if out.soft[up][i], b, err = readTallyMsg(b); err != nil {
				return b, err
			}
		}
	}

	if b, err = expectArray(b, numOutcomes*MaxStreakLen, "streaks"); err != nil {
		return b, err
	}
	for o := 0; o < numOutcomes; o++ {
		for l := 0; l < MaxStreakLen; l++ {
			if out.streak.completed[o][l], b, err = msgp.ReadIntBytes(b); err != nil {
				return b, err
			}
		}
	}

	if out.BreakdownTotals() != out.totals {
		return b, fmt.Errorf("breakdown does not sum to totals: %w", ErrCorrupt)
	}
	*s = out
	return b, nil
}

func appendTallyMsg(b []byte, t Tally) []byte {
	b = msgp.AppendArrayHeader(b, 3)
	b = msgp.AppendInt(b, t.Won)
	b = msgp.AppendInt(b, t.Lost)
	b = msgp.AppendInt(b, t.Pushed)
	return b
}

func readTallyMsg(b []byte) (Tally, []byte, error) {
	var t Tally
	var err error
	if b, err = expectArray(b, 3, "tally"); err != nil {
		return t, b, err
	}
	if t.Won, b, err = msgp.ReadIntBytes(b); err != nil {
		return t, b, err
	}
	if t.Lost, b, err = msgp.ReadIntBytes(b); err != nil {
		return t, b, err
	}
	if t.Pushed, b, err = msgp.ReadIntBytes(b); err != nil {
		return t, b, err
	}
	if t.Won < 0 || t.Lost < 0 || t.Pushed < 0 {
		return t, b, fmt.Errorf("negative tally: %w", ErrCorrupt)
	}
	return t, b, nil
}

func expectArray(b []byte, want int, what string) ([]byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if int(n) != want {
		return b, fmt.Errorf("%s has %d entries, want %d: %w", what, n, want, ErrCorrupt)
	}
	return b, nil
}
