package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/taxodrift/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		msg      string
		jobsNum  int
		wantSize int
	}{
		{"custom size 4", 4, 4},
		{"custom size 1", 1, 1},
	}

	for _, v := range tests {
		pool := parserpool.NewPool(v.jobsNum)
		require.NotNil(t, pool, v.msg)
		assert.Equal(t, v.wantSize, pool.Size(), v.msg)
		res := pool.Parse("Plantago major L.")
		assert.True(t, res.Parsed, v.msg)
		pool.Close()
	}

	pool := parserpool.NewPool(0)
	assert.Positive(t, pool.Size())
	pool.Close()
}

func TestParse(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		msg       string
		name      string
		canonical string
	}{
		{"binomial", "Plantago major", "Plantago major"},
		{"with author", "Plantago major L.", "Plantago major"},
		{"trinomial", "Rosa acicularis var. acicularis", "Rosa acicularis acicularis"},
		{"botanical subgenus", "Aus (Bus)", "Aus"},
	}

	for _, v := range tests {
		res := pool.Parse(v.name)
		require.NotNil(t, res.Canonical, v.msg)
		assert.Equal(t, v.canonical, res.Canonical.Simple, v.msg)
	}
}

func TestParseConcurrent(t *testing.T) {
	pool := parserpool.NewPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				res := pool.Parse("Bellis perennis L.")
				assert.True(t, res.Parsed)
			}
		}()
	}
	wg.Wait()
}
