package batch

import (
	"fmt"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/dateutils"
)

// DateRange is the span of requested execution dates in one input file.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range as "YYYY-MM-DD_YYYY-MM-DD", or "" when unset.
func (dr DateRange) String() string {
	if dr.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dateutils.ToISODate(dr.Start), dateutils.ToISODate(dr.End))
}

// IsZero reports whether no date has been merged into the range.
func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() || dr.End.IsZero()
}

// Merge returns the smallest range covering both dr and other. Unset bounds on
// either side are ignored.
func (dr DateRange) Merge(other DateRange) DateRange {
	return DateRange{
		Start: earliest(dr.Start, other.Start),
		End:   latest(dr.End, other.End),
	}
}

func earliest(a, b time.Time) time.Time {
	if a.IsZero() || (!b.IsZero() && b.Before(a)) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if a.IsZero() || b.After(a) {
		return b
	}
	return a
}

// Add extends the range to include t.
func (dr DateRange) Add(t time.Time) DateRange {
	return dr.Merge(DateRange{Start: t, End: t})
}

// MarshalYAML renders the range in its string form.
func (dr DateRange) MarshalYAML() (interface{}, error) {
	return dr.String(), nil
}
