package midi

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		switch p := recover().(type) {
		case string:
			e = errors.New(p)
		case error:
			e = p
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func resolution(s *smf.SMF) (smf.MetricTicks, error) {
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || tf == 0 {
		return 0, errors.Errorf("unsupported time format: %v", s.TimeFormat)
	}
	return tf, nil
}
