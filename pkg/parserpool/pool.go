// Package parserpool provides a pool of gnparser instances for concurrent
// normalization of plant names. This is a pure package - parsing is
// computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances configured for the botanical code.
type Pool interface {
	// Parse parses a scientific name string. It takes a parser from the
	// pool, parses the name and returns the parser back. This method is
	// safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Size is the number of parsers in the pool.
	Size() int

	// Close shuts down the pool. After calling Close, the pool should not
	// be used.
	Close()
}

type pool struct {
	ch   chan gnparser.GNparser
	size int
}

// NewPool creates a pool of jobsNum parsers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	size := jobsNum
	if size <= 0 {
		size = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(false),
	)
	return &pool{
		ch:   gnparser.NewPool(cfg, size),
		size: size,
	}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Size() int {
	return p.size
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
