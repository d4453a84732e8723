package iopipeline

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/errcode"
)

var (
	ErrShortHistory   = errors.New("not enough releases for a trend")
	ErrNoDisagreement = errors.New("summary has no species disagreements")
)

// TrendInputError is returned when a checklist cannot provide values for
// trend series.
func TrendInputError(checklist string, err error) error {
	msg := "Cannot build trends of <em>%s</em>"
	vars := []any{checklist}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TrendInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
