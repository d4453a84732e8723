// Package trend builds time series of species disagreements between
// releases and tests them for monotonic relationships.
package trend

import (
	"fmt"
	"time"

	"github.com/gnames/taxodrift/pkg/checklist"
)

// Lookup returns the percentage of species disagreements for a couple of
// releases.
type Lookup func(oldTag, newTag string) (float64, error)

// Anchor tells which point of a series is the reference release with a
// disagreement of zero by definition.
type Anchor int

const (
	AnchorFirst Anchor = iota
	AnchorLast
)

// Point is a release on a time axis.
type Point struct {
	Tag   string
	Date  time.Time
	Value float64
}

// Series is a sequence of points in chronological order.
type Series struct {
	Name   string
	Anchor Anchor
	Points []Point
}

// Values returns values of points.
func (s Series) Values() []float64 {
	res := make([]float64, len(s.Points))
	for i := range s.Points {
		res[i] = s.Points[i].Value
	}
	return res
}

// Observed returns points without the anchor.
func (s Series) Observed() []Point {
	if len(s.Points) == 0 {
		return nil
	}
	if s.Anchor == AnchorFirst {
		return s.Points[1:]
	}
	return s.Points[:len(s.Points)-1]
}

// Forward compares the start release with every later release of the
// checklist. The start release gets a value of 0.
func Forward(
	name string,
	cl *checklist.Checklist,
	start string,
	lookup Lookup,
) (Series, error) {
	res := Series{Name: name, Anchor: AnchorFirst}
	idx, err := cl.Index(start)
	if err != nil {
		return res, err
	}
	for i := idx; i < len(cl.Versions); i++ {
		v := cl.Versions[i]
		p, err := point(v)
		if err != nil {
			return res, err
		}
		if i > idx {
			if p.Value, err = lookup(start, v.Tag); err != nil {
				return res, err
			}
		}
		res.Points = append(res.Points, p)
	}
	return res, nil
}

// Backward compares every earlier release of the checklist with the end
// release. The end release gets a value of 0.
func Backward(
	name string,
	cl *checklist.Checklist,
	end string,
	lookup Lookup,
) (Series, error) {
	res := Series{Name: name, Anchor: AnchorLast}
	idx, err := cl.Index(end)
	if err != nil {
		return res, err
	}
	for i := 0; i <= idx; i++ {
		v := cl.Versions[i]
		p, err := point(v)
		if err != nil {
			return res, err
		}
		if i < idx {
			if p.Value, err = lookup(v.Tag, end); err != nil {
				return res, err
			}
		}
		res.Points = append(res.Points, p)
	}
	return res, nil
}

func point(v checklist.Version) (Point, error) {
	d, err := v.Time()
	if err != nil {
		return Point{}, fmt.Errorf("date of %s: %w", v.Tag, err)
	}
	return Point{Tag: v.Tag, Date: d}, nil
}

// Rates are percentages of changes between two releases.
type Rates struct {
	Label          string
	Discrepancy    float64
	Synonymization float64
	Resurrection   float64
}
