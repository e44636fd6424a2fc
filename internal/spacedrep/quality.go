package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidQuality is returned when an outcome quality is not one of the
// four known values.
var ErrInvalidQuality = errors.New("invalid outcome quality")

// Quality is the graded outcome of a single presented scenario.
type Quality int

const (
	qualityUnknown Quality = iota
	QualityBest            // chose the best option
	QualityOK              // chose the acceptable option
	QualityBad             // chose the wrong option
	QualityTimeout         // ran out of time without answering
)

// AllQualities returns the valid qualities from best to worst.
func AllQualities() []Quality {
	return []Quality{QualityBest, QualityOK, QualityBad, QualityTimeout}
}

// Valid reports whether q is one of the four known qualities.
func (q Quality) Valid() bool {
	return q >= QualityBest && q <= QualityTimeout
}

// Lapse reports whether q resets the repetition streak.
func (q Quality) Lapse() bool {
	return q == QualityBad || q == QualityTimeout
}

func (q Quality) String() string {
	switch q {
	case QualityBest:
		return "best"
	case QualityOK:
		return "ok"
	case QualityBad:
		return "bad"
	case QualityTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// ParseQuality converts the wire name of a quality back to its value.
func ParseQuality(s string) (Quality, error) {
	for _, q := range AllQualities() {
		if q.String() == s {
			return q, nil
		}
	}
	return qualityUnknown, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(b []byte) error {
	parsed, err := ParseQuality(string(b))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
