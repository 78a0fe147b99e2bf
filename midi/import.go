package midi

import (
	"math"

	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/ust"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultLyric is sung on notes that have no lyric event before them.
const DefaultLyric = "a"

type sequenceBuilder struct {
	scale  float64
	rows   []ust.NoteLike
	cursor int64 // absolute ticks already covered by rows
}

func (b *sequenceBuilder) ticks(abs int64) int64 {
	return int64(math.Round(float64(abs) * b.scale))
}

func (b *sequenceBuilder) restUntil(abs int64) {
	if abs <= b.cursor {
		return
	}
	b.rows = append(b.rows, ust.Row{
		{Key: ust.KeyLength, Value: ust.Int(b.ticks(abs) - b.ticks(b.cursor))},
		{Key: ust.KeyLyric, Value: ust.Str(constants.RestLyric)},
		{Key: ust.KeyNoteNum, Value: ust.Int(constants.RestNoteNum)},
	})
	b.cursor = abs
}

func (b *sequenceBuilder) note(start, end int64, key uint8, lyric string) {
	b.restUntil(start)
	b.rows = append(b.rows, ust.Row{
		{Key: ust.KeyLength, Value: ust.Int(b.ticks(end) - b.ticks(start))},
		{Key: ust.KeyLyric, Value: ust.Str(lyric)},
		{Key: ust.KeyNoteNum, Value: ust.Int(int64(key))},
	})
	b.cursor = end
}

func firstTempo(s *smf.SMF) float64 {
	for _, events := range s.Tracks {
		for _, event := range events {
			var bpm float64
			if event.Message.GetMetaTempo(&bpm) && bpm > 0 {
				return bpm
			}
		}
	}
	return constants.DefaultTempo
}

// ToSequence reads one track of s as a monophonic melody. A note that starts
// while another sounds cuts the earlier one short. Silence becomes rest notes
// and lyric events name the note that follows them.
func ToSequence(s *smf.SMF, track int) (*ust.Sequence, error) {
	if track < 0 || track >= len(s.Tracks) {
		return nil, errors.Errorf("track %d out of range, file has %d", track, len(s.Tracks))
	}
	tf, err := resolution(s)
	if err != nil {
		return nil, err
	}

	b := sequenceBuilder{scale: float64(constants.TicksPerBeat) / float64(tf)}
	var absTicks int64
	var sounding bool
	var soundingKey uint8
	var soundingStart int64
	var soundingLyric string
	lyric := ""

	for _, event := range s.Tracks[track] {
		absTicks += int64(event.Delta)
		var channel, key, velocity uint8
		var text string
		switch {
		case event.Message.GetMetaLyric(&text):
			lyric = text
		case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			if sounding {
				b.note(soundingStart, absTicks, soundingKey, soundingLyric)
			}
			if lyric == "" {
				lyric = DefaultLyric
			}
			sounding, soundingKey, soundingStart, soundingLyric = true, key, absTicks, lyric
			lyric = ""
		case event.Message.GetNoteOff(&channel, &key, &velocity),
			event.Message.GetNoteOn(&channel, &key, &velocity):
			if sounding && key == soundingKey {
				b.note(soundingStart, absTicks, soundingKey, soundingLyric)
				sounding = false
			}
		}
	}
	if sounding {
		b.note(soundingStart, absTicks, soundingKey, soundingLyric)
	}
	b.restUntil(absTicks)

	settings := ust.NewSettings(
		ust.Attr{Key: ust.SettingTempo, Value: ust.Float(firstTempo(s))},
		ust.Attr{Key: ust.SettingTracks, Value: ust.Int(1)},
	)
	return ust.New(b.rows, ust.WithSettings(settings))
}
