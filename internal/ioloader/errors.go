package ioloader

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/errcode"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrVocabulary     = errors.New("unexpected values")
	ErrEncoding       = errors.New("unsupported encoding")
	ErrNoMember       = errors.New("member not found in archive")
)

func SourceError(src string, err error) error {
	msg := "Cannot find release file <em>%s</em>"
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot locate %s: %w", fn.Name(), src, err),
	}
}

func FetchError(src string, err error) error {
	msg := "Cannot download <em>%s</em>"
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot fetch %s: %w", fn.Name(), src, err),
	}
}

func ArchiveError(path, member string, err error) error {
	msg := "Cannot read <em>%s</em> from archive <em>%s</em>"
	vars := []any{member, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: archive %s: %w", fn.Name(), path, err),
	}
}

func EncodingError(enc string) error {
	msg := "Encoding <em>%s</em> is not supported, " +
		"use utf-8, latin1 or windows-1252"
	vars := []any{enc}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderEncodingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %s", fn.Name(), ErrEncoding, enc),
	}
}

func HeaderError(tag string, missing []string) error {
	msg := "Release <em>%s</em> misses required columns: <em>%s</em>"
	vars := []any{tag, strings.Join(missing, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %v",
			fn.Name(), ErrMissingColumns, missing),
	}
}

func VocabularyError(tag, field string, vals []string) error {
	msg := "Release <em>%s</em> has unexpected %s values: <em>%s</em>. " +
		"Check the release or update vocabulary in versions.yaml"
	vars := []any{tag, field, strings.Join(vals, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderVocabularyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w of %s: %v",
			fn.Name(), ErrVocabulary, field, vals),
	}
}

func SFGAError(path string, err error) error {
	msg := "Cannot read SFGA archive <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoaderSFGAError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
