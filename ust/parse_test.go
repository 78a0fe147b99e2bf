package ust

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/ustkit/attr"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/japanese"
)

const sampleProject = `[#VERSION]
UST Version1.2
Charset=UTF-8
[#SETTING]
Tempo=125.00
Tracks=1
ProjectName=sample
VoiceDir=%VOICE%uta
Mode2=True

[#0000]
Length=480
Lyric=R
NoteNum=60
PreUtterance=
[#0001]
Length=240
Lyric=a
NoteNum=62
Intensity=100
Modulation=0
Flags=g-5
PBS=-40;0
PBW=50,30
PBY=-1.5,0
Envelope=0,5,35,0,100,100,0,%,0,10,100
VBR=65,180,35,20,20,0,0,0
$region=chorus
[#0002]
Length=960
Lyric=i
NoteNum=64
PBType=5
PBStart=-45.5
PitchBend=0,0,1,2
[#TRACKEND]
`

func TestParseSample(t *testing.T) {
	s, err := ParseString(sampleProject)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"UST Version1.2", "Charset=UTF-8"}, s.Version())
	assert.Equal(3, s.Count())
	assert.Equal(1680.0, s.Len())

	tempo, ok := s.Settings().Tempo()
	assert.True(ok)
	assert.Equal(125.0, tempo)
	tracks, _ := s.Settings().Get(SettingTracks)
	assert.Equal(KindNumber, tracks.Kind())
	mode2, _ := s.Settings().Get(SettingMode2)
	b, ok := mode2.Bool()
	assert.True(ok)
	assert.True(b)
	voiceDir, _ := s.Settings().Get("VoiceDir")
	assert.Equal("%VOICE%uta", voiceDir.String())

	rest := s.At(0)
	assert.True(rest.IsRest())
	assert.False(rest.Has(KeyPreUtterance), "empty numeric values are dropped")

	a := s.At(1)
	assert.Equal("a", a.Lyric())
	assert.Equal(62, a.NoteNum())
	pbs, _ := a.Get(KeyPBS)
	p, ok := pbs.Pair()
	assert.True(ok)
	assert.True(p.Equal(attr.Pair(attr.Int(-40), attr.Int(0))))
	env, _ := a.Get(KeyEnvelope)
	e, ok := env.Envelope()
	assert.True(ok)
	assert.True(e[7].Marker)
	vbr, _ := a.Get(KeyVBR)
	assert.Equal(KindSeq, vbr.Kind())
	flags, _ := a.Get(KeyFlags)
	assert.Equal("g-5", flags.String())
	custom, _ := a.Get("$region")
	assert.Equal(KindString, custom.Kind())

	i := s.At(2)
	start, _ := i.Get(KeyPBStart)
	n, _ := start.Number()
	assert.Equal(-45.5, n.Float64())
}

func TestParseRoundTrip(t *testing.T) {
	s, err := ParseString(sampleProject)
	assert.NoError(t, err)

	again, err := ParseString(s.String())
	assert.NoError(t, err)
	assert.True(t, s.Equal(again))
	assert.Equal(t, s.String(), again.String())
}

func TestSerializeLayout(t *testing.T) {
	s, _ := New([]NoteLike{row(480, 60, "a"), row(240, 62, "R")},
		WithSettings(NewSettings(Attr{Key: SettingTempo, Value: Float(120)})))

	want := strings.Join([]string{
		"[#VERSION]",
		"UST Version1.2",
		"Charset=UTF-8",
		"[#SETTING]",
		"Tempo=120.0",
		"[#0000]",
		"Length=480",
		"NoteNum=60",
		"Lyric=a",
		"[#0001]",
		"Length=240",
		"NoteNum=62",
		"Lyric=R",
		"[#TRACKEND]",
		"",
	}, "\n")
	assert.Equal(t, want, s.String())
}

func TestParseFinalNoteWithoutTrackEnd(t *testing.T) {
	s, err := ParseString("[#SETTING]\nTempo=120\n[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#0001]\nLength=240\nLyric=b\nNoteNum=61\n")
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "b", s.At(1).Lyric())
}

func TestParseIgnoresLinesAfterTrackEnd(t *testing.T) {
	s, err := ParseString("[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#TRACKEND]\nLength=1\n")
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 480.0, s.At(0).Len())
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	s, err := ParseString("[#VERSION]\r\nUST Version1.2\r\n\r\n[#0000]\r\n\r\nLength=480\r\nLyric=a\r\nNoteNum=60\r\n[#TRACKEND]\r\n")
	assert.NoError(t, err)
	assert.Equal(t, []string{"UST Version1.2"}, s.Version())
	assert.Equal(t, 1, s.Count())
}

func TestParsePrevNextBlocksAreNotes(t *testing.T) {
	// plugin files wrap the selection with [#PREV] and [#NEXT]
	s, err := ParseString("[#PREV]\nLength=480\nLyric=a\nNoteNum=60\n[#0000]\nLength=240\nLyric=b\nNoteNum=62\n[#NEXT]\nLength=120\nLyric=c\nNoteNum=64\n")
	assert.NoError(t, err)
	assert.Equal(t, 3, s.Count())
}

func TestParseNoteBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		lyrics  []string
		version []string
	}{
		{
			name:   "empty note tags in a row",
			in:     "[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#0001]\n[#0002]\nLength=240\nLyric=b\nNoteNum=62\n[#TRACKEND]\n",
			lyrics: []string{"a", "b"},
		},
		{
			name:    "version tag after a note",
			in:      "[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#VERSION]\nUST Version1.2\n[#0001]\nLength=240\nLyric=b\nNoteNum=62\n",
			lyrics:  []string{"a", "b"},
			version: []string{"UST Version1.2"},
		},
		{
			name:   "setting tag after a note",
			in:     "[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#SETTING]\nTempo=100\n[#0001]\nLength=240\nLyric=b\nNoteNum=62\n",
			lyrics: []string{"a", "b"},
		},
		{
			name:    "empty tags then a version block",
			in:      "[#0000]\nLength=480\nLyric=a\nNoteNum=60\n[#0001]\n[#0002]\nLength=240\nLyric=b\nNoteNum=62\n[#VERSION]\nUST Version1.2\n[#0003]\nLength=120\nLyric=c\nNoteNum=64\n[#TRACKEND]\n",
			lyrics:  []string{"a", "b", "c"},
			version: []string{"UST Version1.2"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ParseString(c.in)
			assert := assert.New(t)
			assert.NoError(err)

			var lyrics []string
			for _, n := range s.Notes() {
				lyrics = append(lyrics, n.Lyric())
			}
			assert.Equal(c.lyrics, lyrics)
			if c.version != nil {
				assert.Equal(c.version, s.Version())
			}
		})
	}
}

func TestParseTempoClamp(t *testing.T) {
	s, err := ParseString("[#SETTING]\nTempo=450\nProjectName=fast\n[#TRACKEND]\n")
	assert.NoError(t, err)

	tempo, ok := s.Settings().Tempo()
	assert.True(t, ok)
	assert.Equal(t, 120.0, tempo)
	// the rest of the block survives the clamp
	name, ok := s.Settings().Get("ProjectName")
	assert.True(t, ok)
	assert.Equal(t, "fast", name.String())
	assert.Equal(t, 2, s.Settings().Len())
}

func TestParseBadNumber(t *testing.T) {
	_, err := ParseString("[#0000]\nLength=4x0\nLyric=a\nNoteNum=60\n[#TRACKEND]\n")

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, KeyLength, pe.Key)
	assert.Equal(t, 2, pe.Line)
	var se *attr.SyntaxError
	assert.True(t, errors.As(err, &se))
}

func TestParseBadPBS(t *testing.T) {
	_, err := ParseString("[#0000]\nLength=480\nLyric=a\nNoteNum=60\nPBS=1;2;3\n[#TRACKEND]\n")
	assert.True(t, errors.Is(err, attr.ErrMalformedSequence))
}

func TestParseLineWithoutEquals(t *testing.T) {
	_, err := ParseString("[#SETTING]\nTempo\n")
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestParseValidatesNotes(t *testing.T) {
	_, err := ParseString("[#0000]\nLength=480\nLyric=a\nNoteNum=60.5\n[#TRACKEND]\n")
	var tm *TypeMismatchError
	assert.True(t, errors.As(err, &tm))
	assert.Equal(t, KeyNoteNum, tm.Attr)
}

func TestParseEmptyLyricIsRest(t *testing.T) {
	s, err := ParseString("[#0000]\nLength=480\nLyric=\nNoteNum=60\n[#TRACKEND]\n")
	assert.NoError(t, err)
	assert.True(t, s.At(0).IsRest())
}

func TestParseBytesUTF8(t *testing.T) {
	s, err := ParseBytes([]byte("\xEF\xBB\xBF[#0000]\nLength=480\nLyric=あ\nNoteNum=60\n[#TRACKEND]\n"))
	assert.NoError(t, err)
	assert.Equal(t, "あ", s.At(0).Lyric())
}

func TestParseBytesShiftJIS(t *testing.T) {
	text := "[#SETTING]\nTempo=120\nProjectName=テスト\n[#0000]\nLength=480\nLyric=あ\nNoteNum=60\n[#0001]\nLength=480\nLyric=い\nNoteNum=62\n[#TRACKEND]\n"
	raw, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	assert.NoError(t, err)

	s, err := ParseBytes(raw)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("あ", s.At(0).Lyric())
	assert.Equal("い", s.At(1).Lyric())
	name, _ := s.Settings().Get("ProjectName")
	assert.Equal("テスト", name.String())
}
