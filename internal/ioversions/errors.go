package ioversions

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/errcode"
)

// VersionsConfigError creates an error for when versions.yaml cannot be
// loaded.
func VersionsConfigError(path string, err error) error {
	msg := `Cannot load checklist versions

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Releases are not in chronological order

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to get the default one on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.VersionsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load versions config: %w", err),
	}
}

func UnknownChecklistError(
	name string,
	reg *checklist.Registry,
	err error,
) error {
	names := make([]string, len(reg.Checklists))
	for i := range reg.Checklists {
		names[i] = reg.Checklists[i].Name
	}
	msg := "Checklist <em>%s</em> is not in versions.yaml, " +
		"known checklists: %s"
	vars := []any{name, strings.Join(names, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownChecklistError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

func UnknownVersionError(cl *checklist.Checklist, err error) error {
	msg := "Unknown release of <em>%s</em>, known releases: %s"
	vars := []any{cl.Name, strings.Join(cl.Tags(), ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

func VersionOrderError(cl *checklist.Checklist, err error) error {
	msg := "Releases of <em>%s</em> must be given from the oldest " +
		"to the newest: %s"
	vars := []any{cl.Name, strings.Join(cl.Tags(), ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VersionOrderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
