package resolver

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/errcode"
)

var (
	ErrDuplicateID = errors.New("duplicate accepted identifier")
	ErrSelfMatch   = errors.New("accepted record does not resolve to itself")
	ErrThreshold   = errors.New("too many unresolved records")
)

func DuplicateIDError(tag, id, name1, name2 string) error {
	msg := "Release <em>%s</em> has two accepted records with ID " +
		"<em>%s</em>: %s, %s"
	vars := []any{tag, id, name1, name2}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverDuplicateIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %s", fn.Name(), ErrDuplicateID, id),
	}
}

func SelfMatchError(tag, id, name, accName string) error {
	msg := "Accepted record <em>%s</em> (%s) of <em>%s</em> " +
		"resolves to <em>%s</em>"
	vars := []any{name, id, tag, accName}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverSelfMatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %s", fn.Name(), ErrSelfMatch, id),
	}
}

func ThresholdError(tag string, count, limit int) error {
	msg := "Release <em>%s</em> has %d records without accepted " +
		"name, the limit is %d. Check the release or raise " +
		"<em>max_unresolved</em>"
	vars := []any{tag, count, limit}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResolverThresholdError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %d > %d",
			fn.Name(), ErrThreshold, count, limit),
	}
}
