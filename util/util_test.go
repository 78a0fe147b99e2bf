package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Sum([]int{}))
	assert.Equal(6, Sum([]int{1, 2, 3}))
	assert.Equal(720.5, Sum([]float64{480, 240, 0.5}))
}

func TestMinMax(t *testing.T) {
	lo, hi, ok := MinMax([]int{72, 60, 64})

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(60, lo)
	assert.Equal(72, hi)

	_, _, ok = MinMax([]int(nil))
	assert.False(ok)
}

func TestGatherAllPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ust", "b.UST", "c.txt", "sub/d.ust"} {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	paths, err := GatherAllPaths(dir, 0, ".ust")
	assert.NoError(t, err)
	assert.Len(t, paths, 3)

	paths, err = GatherAllPaths(dir, 2, ".ust")
	assert.NoError(t, err)
	assert.Len(t, paths, 2)
}
