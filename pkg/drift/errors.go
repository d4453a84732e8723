package drift

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/errcode"
)

var ErrChainLength = errors.New("not enough releases")

func ChainLengthError(n int) error {
	msg := "Comparison needs at least two releases, got <em>%d</em>"
	vars := []any{n}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChainLengthError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %d", fn.Name(), ErrChainLength, n),
	}
}
