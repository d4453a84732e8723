// Package iopipeline implements lifecycle.Pipeline. It connects loaders,
// the resolver, name matching and file writers into the analysis steps
// exposed by the command line.
package iopipeline

import (
	"os"
	"sync"

	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/lifecycle"
	"github.com/gnames/taxodrift/pkg/parserpool"
	"github.com/gnames/taxodrift/pkg/resolver"
)

type pipeline struct {
	cfg *config.Config
	reg *checklist.Registry

	// progress shows progress bars while loading releases.
	progress bool

	// force ignores resolved tables saved by earlier runs.
	force bool

	poolOnce sync.Once
	pool     parserpool.Pool

	mu      sync.Mutex
	reports map[string]resolver.Report
}

// Option configures the pipeline.
type Option func(*pipeline)

// OptProgress turns progress bars on or off.
func OptProgress(b bool) Option {
	return func(p *pipeline) {
		p.progress = b
	}
}

// OptForce makes the pipeline reload and resolve releases even when
// their resolved tables exist.
func OptForce(b bool) Option {
	return func(p *pipeline) {
		p.force = b
	}
}

// New creates a pipeline for checklists of the registry.
func New(
	cfg *config.Config,
	reg *checklist.Registry,
	opts ...Option,
) lifecycle.Pipeline {
	res := &pipeline{
		cfg:      cfg,
		reg:      reg,
		progress: true,
		reports:  make(map[string]resolver.Report),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Close releases parsers of the pipeline.
func (p *pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *pipeline) parsers() parserpool.Pool {
	p.poolOnce.Do(func() {
		p.pool = parserpool.NewPool(p.cfg.JobsNumber)
	})
	return p.pool
}

func (p *pipeline) checklist(name string) (*checklist.Checklist, error) {
	return ioversions.Find(p.reg, name)
}

func (p *pipeline) report(cl, tag string) (resolver.Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rep, ok := p.reports[cl+"/"+tag]
	return rep, ok
}

func (p *pipeline) setReport(cl string, rep resolver.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports[cl+"/"+rep.Tag] = rep
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
