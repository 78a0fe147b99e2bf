package util

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// GatherAllPaths walks path and returns files whose extension is one of
// exts, up to maxNum of them (0 means no limit).
func GatherAllPaths(path string, maxNum int, exts ...string) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(s))
		for _, want := range exts {
			if ext == want && (maxNum == 0 || len(res) < maxNum) {
				res = append(res, s)
				break
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, err
	}
	return res, nil
}

func Sum[A Number](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// MinMax returns false when vals is empty.
func MinMax[A constraints.Ordered](vals []A) (A, A, bool) {
	var lo, hi A
	if len(vals) == 0 {
		return lo, hi, false
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}
