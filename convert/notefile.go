package convert

import (
	"github.com/jsphweid/ustkit/ust"
	"github.com/pkg/errors"
)

// ExternalNote is one note handed to a NoteFile. Length, Lyric and NoteNum
// have dedicated fields; every other attribute is in Properties, in order.
type ExternalNote struct {
	Length     float64
	Lyric      string
	NoteNum    int
	Properties []ust.Attr
}

// NoteFile is a note-file model owned by someone else, such as a MIDI file
// builder. ToNoteFile only shapes data into it.
type NoteFile interface {
	SetProperties(props []ust.Attr) error
	AddNote(n ExternalNote) error
}

func isDedicated(key string) bool {
	return key == ust.KeyLength || key == ust.KeyLyric || key == ust.KeyNoteNum
}

// ToNoteFile copies s into target: the settings unchanged, then each note.
func ToNoteFile(s *ust.Sequence, target NoteFile) error {
	if err := target.SetProperties(s.Settings().Attrs()); err != nil {
		return errors.Wrap(err, "could not set file properties")
	}
	for i, n := range s.Notes() {
		en := ExternalNote{
			Length:  n.Len(),
			Lyric:   n.Lyric(),
			NoteNum: n.NoteNum(),
		}
		for _, a := range n.Attrs() {
			if !isDedicated(a.Key) {
				en.Properties = append(en.Properties, a)
			}
		}
		if err := target.AddNote(en); err != nil {
			return errors.Wrapf(err, "could not add note %d", i)
		}
	}
	return nil
}
