package midi

import (
	"io"
	"math"

	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/convert"
	"github.com/jsphweid/ustkit/ust"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	defaultChannel  = 0
	defaultVelocity = 100
)

// Writer collects notes into a single SMF track. Project ticks and SMF ticks
// share the same resolution, so lengths are copied as is. Rests only delay
// the next event.
type Writer struct {
	Channel  uint8
	Velocity uint8

	track    smf.Track
	hasTempo bool
	pending  uint32
	closed   bool
}

var _ convert.NoteFile = (*Writer)(nil)

func NewWriter() *Writer {
	return &Writer{Channel: defaultChannel, Velocity: defaultVelocity}
}

// SetProperties writes the project tempo, falling back to the default when
// the settings carry none.
func (w *Writer) SetProperties(props []ust.Attr) error {
	bpm := float64(constants.DefaultTempo)
	for _, p := range props {
		if p.Key != ust.SettingTempo {
			continue
		}
		n, ok := p.Value.Number()
		if !ok || n.Float64() <= 0 {
			return errors.Errorf("bad tempo %q", p.Value.String())
		}
		bpm = n.Float64()
	}
	w.track.Add(0, smf.MetaTempo(bpm))
	w.hasTempo = true
	return nil
}

func (w *Writer) AddNote(n convert.ExternalNote) error {
	if w.closed {
		return errors.New("writer is closed")
	}
	if !w.hasTempo {
		if err := w.SetProperties(nil); err != nil {
			return err
		}
	}
	if n.Length < 0 {
		return errors.Errorf("negative length %v", n.Length)
	}
	ticks := uint32(math.Round(n.Length))

	if ust.IsRestLyric(n.Lyric) {
		w.pending += ticks
		return nil
	}
	if n.NoteNum < 0 || n.NoteNum > 127 {
		return errors.Errorf("note number %d out of midi range", n.NoteNum)
	}

	key := uint8(n.NoteNum)
	w.track.Add(w.pending, smf.MetaLyric(n.Lyric))
	w.track.Add(0, gomidi.NoteOn(w.Channel, key, w.velocity(n.Properties)))
	w.track.Add(ticks, gomidi.NoteOff(w.Channel, key))
	w.pending = 0
	return nil
}

// velocity scales the writer's velocity by the note's Intensity (percent).
func (w *Writer) velocity(props []ust.Attr) uint8 {
	v := float64(w.Velocity)
	for _, p := range props {
		if p.Key != ust.KeyIntensity {
			continue
		}
		if n, ok := p.Value.Number(); ok {
			v = v * n.Float64() / 100
		}
	}
	v = math.Round(v)
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// SMF closes the track, carrying any trailing rest as the end-of-track
// delta, and returns the file. The writer accepts no notes afterwards.
func (w *Writer) SMF() *smf.SMF {
	if !w.closed {
		if !w.hasTempo {
			w.SetProperties(nil)
		}
		w.track.Close(w.pending)
		w.pending = 0
		w.closed = true
	}

	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)
	res.Tracks = append(res.Tracks, w.track)
	return &res
}

func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.SMF().WriteTo(out)
}

// Export writes seq as a standard MIDI file.
func Export(seq *ust.Sequence, out io.Writer) error {
	w := NewWriter()
	if err := convert.ToNoteFile(seq, w); err != nil {
		return err
	}
	if _, err := w.WriteTo(out); err != nil {
		return errors.Wrap(err, "could not write midi file")
	}
	return nil
}
