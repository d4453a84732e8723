package checklist

import (
	"fmt"
	"slices"
	"strings"
)

// Checklist finds a checklist by name.
func (r *Registry) Checklist(name string) (*Checklist, error) {
	for i := range r.Checklists {
		if r.Checklists[i].Name == name {
			return &r.Checklists[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownChecklist, name)
}

// Settings returns the version with checklist-level defaults applied to
// empty fields.
func (c *Checklist) Settings(v Version) Version {
	if v.Separator == "" {
		v.Separator = c.Separator
	}
	if v.Separator == "" {
		v.Separator = defaultSeparator(c.Format)
	}
	if v.Encoding == "" {
		v.Encoding = c.Encoding
	}
	if v.Encoding == "" {
		v.Encoding = "utf-8"
	}
	v.Encoding = strings.ToLower(v.Encoding)
	if v.MaxUnresolved == nil {
		v.MaxUnresolved = c.MaxUnresolved
	}
	if len(v.Statuses) == 0 {
		v.Statuses = c.Statuses
	}
	return v
}

// Threshold returns the tolerated number of unresolved records of the
// version, or def when neither the version nor its checklist sets one.
// It expects a version returned by Settings.
func (v Version) Threshold(def int) int {
	if v.MaxUnresolved == nil {
		return def
	}
	return *v.MaxUnresolved
}

func defaultSeparator(f Format) string {
	switch f {
	case WCVP:
		return "|"
	case WFO:
		return "\t"
	}
	return ","
}

// Tags returns version tags in chronological order.
func (c *Checklist) Tags() []string {
	res := make([]string, len(c.Versions))
	for i := range c.Versions {
		res[i] = c.Versions[i].Tag
	}
	return res
}

// Index returns the position of a tag in the chronological order.
func (c *Checklist) Index(tag string) (int, error) {
	for i := range c.Versions {
		if c.Versions[i].Tag == tag {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s of %s", ErrUnknownVersion, tag, c.Name)
}

// Version finds a version by its tag.
func (c *Checklist) Version(tag string) (Version, error) {
	i, err := c.Index(tag)
	if err != nil {
		return Version{}, err
	}
	return c.Settings(c.Versions[i]), nil
}

// Sequence returns versions for the given tags, checking that they are
// in chronological order. Empty tags mean all versions.
func (c *Checklist) Sequence(tags []string) ([]Version, error) {
	if len(tags) == 0 {
		tags = c.Tags()
	}
	res := make([]Version, 0, len(tags))
	prev := -1
	for _, tag := range tags {
		i, err := c.Index(tag)
		if err != nil {
			return nil, err
		}
		if i <= prev {
			return nil, fmt.Errorf(
				"version %s of %s is not newer than %s",
				tag, c.Name, c.Versions[prev].Tag,
			)
		}
		prev = i
		res = append(res, c.Settings(c.Versions[i]))
	}
	return res, nil
}

// Pair is an ordered couple of releases.
type Pair struct {
	Old, New Version
}

// Pairs returns all ordered couples of releases, oldest first.
func (c *Checklist) Pairs() []Pair {
	var res []Pair
	for i := range c.Versions {
		for j := i + 1; j < len(c.Versions); j++ {
			res = append(res, Pair{
				Old: c.Settings(c.Versions[i]),
				New: c.Settings(c.Versions[j]),
			})
		}
	}
	return res
}

// Consecutive returns couples of adjacent releases.
func (c *Checklist) Consecutive() []Pair {
	var res []Pair
	for i := 1; i < len(c.Versions); i++ {
		res = append(res, Pair{
			Old: c.Settings(c.Versions[i-1]),
			New: c.Settings(c.Versions[i]),
		})
	}
	return res
}

// Unexpected returns sorted values from vals that are not in vocab.
// An empty vocabulary allows everything.
func Unexpected(vals, vocab []string) []string {
	if len(vocab) == 0 {
		return nil
	}
	var res []string
	for _, v := range vals {
		if !slices.Contains(vocab, v) && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	slices.Sort(res)
	return res
}
