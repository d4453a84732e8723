package checklist

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

var encodings = []string{"utf-8", "latin1", "windows-1252"}

// Validate checks the registry for errors and collects warnings.
func (r *Registry) Validate() error {
	if len(r.Checklists) == 0 {
		return fmt.Errorf("no checklists specified in configuration")
	}

	seen := make(map[string]struct{})
	for i := range r.Checklists {
		cl := &r.Checklists[i]
		if _, ok := seen[cl.Name]; ok {
			return fmt.Errorf("checklist %q is listed twice", cl.Name)
		}
		seen[cl.Name] = struct{}{}

		warnings, err := cl.Validate()
		if err != nil {
			return fmt.Errorf("checklist %d: %w", i+1, err)
		}
		r.Warnings = append(r.Warnings, warnings...)
	}
	return nil
}

// Validate checks a single checklist. File system checks are deferred
// to the loader.
func (c *Checklist) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	if c.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.ContainsAny(c.Name, `/\ `) {
		return nil, fmt.Errorf("name %q cannot contain slashes or spaces", c.Name)
	}

	switch c.Format {
	case WCVP, WFO, SFGA:
	default:
		return nil, fmt.Errorf(
			"invalid format %q of %s: must be 'wcvp', 'wfo' or 'sfga'",
			c.Format, c.Name,
		)
	}

	if len(c.Versions) < 2 {
		warnings = append(warnings, ValidationWarning{
			Checklist:  c.Name,
			Field:      "versions",
			Message:    "less than two versions, nothing to compare",
			Suggestion: "Add more releases to 'versions'",
		})
	}

	if len(c.Statuses) == 0 {
		warnings = append(warnings, ValidationWarning{
			Checklist:  c.Name,
			Field:      "statuses",
			Message:    "status vocabulary is empty, any status is allowed",
			Suggestion: "List expected statuses to catch changes in new releases",
		})
	}

	tags := make(map[string]struct{})
	var prev time.Time
	for i, v := range c.Versions {
		if v.Tag == "" {
			return nil, fmt.Errorf("version %d of %s: tag is required", i+1, c.Name)
		}
		if _, ok := tags[v.Tag]; ok {
			return nil, fmt.Errorf("version %s of %s is listed twice", v.Tag, c.Name)
		}
		tags[v.Tag] = struct{}{}

		if v.Source == "" {
			return nil, fmt.Errorf("version %s of %s: source is required", v.Tag, c.Name)
		}

		date, err := v.Time()
		if err != nil {
			return nil, fmt.Errorf("version %s of %s: %w", v.Tag, c.Name, err)
		}
		if date.Before(prev) {
			return nil, fmt.Errorf(
				"version %s of %s is older than the version before it",
				v.Tag, c.Name,
			)
		}
		prev = date

		if _, err = c.Settings(v).Rune(); err != nil {
			return nil, fmt.Errorf("version %s of %s: %w", v.Tag, c.Name, err)
		}

		enc := c.Settings(v).Encoding
		if !slices.Contains(encodings, enc) {
			return nil, fmt.Errorf(
				"version %s of %s: unsupported encoding %q, use one of %v",
				v.Tag, c.Name, enc, encodings,
			)
		}

		if c.Format != SFGA && isZip(v.Source) && v.Member == "" {
			warnings = append(warnings, ValidationWarning{
				Checklist: c.Name,
				Field:     "member",
				Message: fmt.Sprintf(
					"version %s is a zip archive without 'member'", v.Tag,
				),
				Suggestion: "The first CSV-like file of the archive will be used",
			})
		}
	}

	return warnings, nil
}

// Time parses the release date.
func (v Version) Time() (time.Time, error) {
	res, err := time.Parse(time.DateOnly, v.Date)
	if err != nil {
		return res, fmt.Errorf("date %q is not in YYYY-MM-DD format", v.Date)
	}
	return res, nil
}

// Rune converts the separator setting to a rune.
func (v Version) Rune() (rune, error) {
	switch strings.ToLower(v.Separator) {
	case "tab", `\t`:
		return '\t', nil
	case "pipe":
		return '|', nil
	case "comma":
		return ',', nil
	}
	r := []rune(v.Separator)
	if len(r) != 1 {
		return 0, fmt.Errorf("separator %q must be a single character", v.Separator)
	}
	return r[0], nil
}

func isZip(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), ".zip")
}
