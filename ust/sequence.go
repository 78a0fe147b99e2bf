package ust

import (
	"math"

	"github.com/jsphweid/ustkit/util"
	"github.com/pkg/errors"
)

// Sequence is a whole project: version lines, settings and notes.
type Sequence struct {
	version  []string
	settings *Settings
	notes    []*Note
	validate bool
}

func New(items []NoteLike, opts ...Option) (*Sequence, error) {
	o := buildOptions(opts)
	s := &Sequence{
		version:  o.version,
		settings: o.settings,
		validate: o.validate,
	}
	if s.version == nil {
		s.version = append([]string(nil), defaultVersion...)
	}
	if s.settings == nil {
		s.settings = DefaultSettings()
	}
	if err := s.Extend(items); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sequence) wrap(item NoteLike) (*Note, error) {
	if item == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "nil note")
	}
	n, err := item.toNote(s.validate)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "nil note")
	}
	return n, nil
}

func (s *Sequence) wrapAll(items []NoteLike) ([]*Note, error) {
	res := make([]*Note, 0, len(items))
	for _, item := range items {
		n, err := s.wrap(item)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (s *Sequence) Version() []string {
	return append([]string(nil), s.version...)
}

func (s *Sequence) Settings() *Settings {
	return s.settings
}

// Notes returns the notes in order. The slice is a copy; the notes are not.
func (s *Sequence) Notes() []*Note {
	return append([]*Note(nil), s.notes...)
}

func (s *Sequence) Count() int {
	return len(s.notes)
}

func (s *Sequence) At(i int) *Note {
	return s.notes[i]
}

func (s *Sequence) SetAt(i int, item NoteLike) error {
	if i < 0 || i >= len(s.notes) {
		return errors.Errorf("note index %d out of range, sequence has %d", i, len(s.notes))
	}
	n, err := s.wrap(item)
	if err != nil {
		return err
	}
	s.notes[i] = n
	return nil
}

func (s *Sequence) DeleteAt(i int) {
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
}

func (s *Sequence) Append(items ...NoteLike) error {
	return s.Extend(items)
}

func (s *Sequence) Extend(items []NoteLike) error {
	notes, err := s.wrapAll(items)
	if err != nil {
		return err
	}
	s.notes = append(s.notes, notes...)
	return nil
}

func (s *Sequence) Insert(i int, item NoteLike) error {
	return s.InsertMany(i, []NoteLike{item})
}

// clampIndex maps an insertion index into [0, Count]. Negative indexes
// count from the end.
func (s *Sequence) clampIndex(i int) int {
	if i < 0 {
		i += len(s.notes)
		if i < 0 {
			return 0
		}
	}
	if i > len(s.notes) {
		return len(s.notes)
	}
	return i
}

// InsertMany inserts items before index i, keeping their order. An index
// past the end appends.
func (s *Sequence) InsertMany(i int, items []NoteLike) error {
	notes, err := s.wrapAll(items)
	if err != nil {
		return err
	}
	i = s.clampIndex(i)
	res := make([]*Note, 0, len(s.notes)+len(notes))
	res = append(res, s.notes[:i]...)
	res = append(res, notes...)
	res = append(res, s.notes[i:]...)
	s.notes = res
	return nil
}

func cloneNotes(notes []*Note) []*Note {
	res := make([]*Note, len(notes))
	for i, n := range notes {
		res[i] = n.Clone()
	}
	return res
}

// Concat returns a new sequence with s's header and copies of the notes of
// both. Editing the result leaves s and other untouched.
func (s *Sequence) Concat(other *Sequence) (*Sequence, error) {
	if s == nil || other == nil {
		return nil, ErrStructuralMismatch
	}
	res := &Sequence{
		version:  s.Version(),
		settings: s.settings.Clone(),
		validate: s.validate,
	}
	res.notes = append(cloneNotes(s.notes), cloneNotes(other.notes)...)
	return res, nil
}

// AppendSequence appends copies of other's notes to s.
func (s *Sequence) AppendSequence(other *Sequence) error {
	if s == nil || other == nil {
		return ErrStructuralMismatch
	}
	s.notes = append(s.notes, cloneNotes(other.notes)...)
	return nil
}

// Len is the total duration in ticks, not the number of notes.
func (s *Sequence) Len() float64 {
	lengths := make([]float64, len(s.notes))
	for i, n := range s.notes {
		lengths[i] = n.Len()
	}
	return util.Sum(lengths)
}

// Quantize snaps every Length to the nearest multiple of standard, rounding
// halves to even. Notes that end up with a negative length are removed.
func (s *Sequence) Quantize(standard int) error {
	if standard <= 0 {
		return errors.Errorf("quantize standard must be positive, got %d", standard)
	}
	kept := s.notes[:0]
	for _, n := range s.notes {
		q := int64(math.RoundToEven(n.Len()/float64(standard))) * int64(standard)
		if q < 0 {
			continue
		}
		n.Set(KeyLength, Int(q))
		kept = append(kept, n)
	}
	for i := len(kept); i < len(s.notes); i++ {
		s.notes[i] = nil
	}
	s.notes = kept
	return nil
}

// Range returns the highest and lowest NoteNum among voiced notes.
func (s *Sequence) Range() (high, low int, err error) {
	var pitches []int
	for _, n := range s.notes {
		if n.IsVoiced() {
			pitches = append(pitches, n.NoteNum())
		}
	}
	low, high, ok := util.MinMax(pitches)
	if !ok {
		return 0, 0, ErrRangeEmpty
	}
	return high, low, nil
}

func (s *Sequence) Equal(o *Sequence) bool {
	if len(s.version) != len(o.version) || len(s.notes) != len(o.notes) {
		return false
	}
	for i := range s.version {
		if s.version[i] != o.version[i] {
			return false
		}
	}
	if !s.settings.Equal(o.settings) {
		return false
	}
	for i := range s.notes {
		if !s.notes[i].Equal(o.notes[i]) {
			return false
		}
	}
	return true
}
