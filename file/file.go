package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/ustkit/convert"
	"github.com/jsphweid/ustkit/model"
	"github.com/jsphweid/ustkit/ust"
	"github.com/jsphweid/ustkit/util"
	"github.com/pkg/errors"
)

// Extensions recognized when gathering project files.
var (
	ProjectExts = []string{".ust", ".tmp"}
	NNExts      = []string{".nn"}
)

// Open reads a project file in whatever encoding it was saved with.
func Open(path string) (*ust.Sequence, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read project file")
	}
	s, err := ust.ParseBytes(dat)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %v", path)
	}
	return s, nil
}

// Save writes s as UTF-8. An existing file is only replaced when force is
// set.
func Save(s *ust.Sequence, path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(err, "%v already exists", path)
		}
		return errors.Wrap(err, "could not create project file")
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return errors.Wrapf(err, "could not write %v", path)
	}
	return f.Close()
}

func OpenNN(path string, opts convert.NNOptions) (*ust.Sequence, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read nn file")
	}
	s, err := convert.FromNN(bytes.NewReader(dat), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "could not convert %v", path)
	}
	return s, nil
}

// Gather lists project files under dir, at most maxNum of them (0 means
// all).
func Gather(dir string, maxNum int) ([]string, error) {
	return util.GatherAllPaths(dir, maxNum, ProjectExts...)
}

// Summarize opens path and describes it, including its size on disk.
func Summarize(path string) (model.Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Summary{}, errors.Wrap(err, "could not stat project file")
	}
	s, err := Open(path)
	if err != nil {
		return model.Summary{}, err
	}
	sum := model.NewSummary(info.Name(), s)
	sum.Size = info.Size()
	return sum, nil
}

// SummarizeAll summarizes every project under dir, keyed by its slash
// separated path relative to dir so same-named files in different folders
// stay distinct. Projects that fail to parse are skipped.
func SummarizeAll(dir string, maxNum int) ([]model.Summary, error) {
	paths, err := Gather(dir, maxNum)
	if err != nil {
		return nil, err
	}
	var res []model.Summary
	for i, path := range paths {
		fmt.Printf("Processing %v of %v project files\n", i+1, len(paths))
		s, err := Summarize(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not key %v", path)
		}
		s.File = filepath.ToSlash(rel)
		res = append(res, s)
	}
	return res, nil
}
