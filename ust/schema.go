package ust

import (
	"github.com/jsphweid/ustkit/attr"
)

const (
	KeyLength       = "Length"
	KeyNoteNum      = "NoteNum"
	KeyLyric        = "Lyric"
	KeyOverlap      = "Overlap"
	KeyPreUtterance = "PreUtterance"
	KeyStartPoint   = "StartPoint"
	KeyTempo        = "Tempo"
	KeyModulation   = "Modulation"
	KeyIntensity    = "Intensity"
	KeyFlags        = "Flags"
	KeyEnvelope     = "Envelope"
	KeyEnvOverlap   = "@overlap"
	KeyEnvPreUttr   = "@preuttr"
	KeyEnvStPoint   = "@stpoint"
	KeyPBType       = "PBType"
	KeyPBStart      = "PBStart"
	KeyPitchBend    = "PitchBend"
	KeyPBW          = "PBW"
	KeyPBY          = "PBY"
	KeyPBS          = "PBS"
	KeyVBR          = "VBR"

	SettingTempo      = "Tempo"
	SettingTracks     = "Tracks"
	SettingMode2      = "Mode2"
	SettingUstVersion = "UstVersion"
)

type coerceFunc func(string) (Value, error)

// attrSpec is the declared type of a known note attribute and how its text
// is turned into a Value.
type attrSpec struct {
	kind    Kind
	intOnly bool
	coerce  coerceFunc
}

func coerceNumber(s string) (Value, error) {
	n, err := attr.ParseNumber(s)
	if err != nil {
		return Value{}, err
	}
	return Num(n), nil
}

func coerceString(s string) (Value, error) {
	return Str(s), nil
}

func coerceSeq(s string) (Value, error) {
	seq, err := attr.ParseSeq(s)
	if err != nil {
		return Value{}, err
	}
	return SeqOf(seq), nil
}

func coerceEnvelope(s string) (Value, error) {
	env, err := attr.ParseEnvelope(s)
	if err != nil {
		return Value{}, err
	}
	return EnvelopeOf(env), nil
}

func coercePair(s string) (Value, error) {
	p, err := attr.ParseOffsetPair(s)
	if err != nil {
		return Value{}, err
	}
	return PairOf(p), nil
}

var (
	numberSpec = attrSpec{kind: KindNumber, coerce: coerceNumber}
	stringSpec = attrSpec{kind: KindString, coerce: coerceString}
	seqSpec    = attrSpec{kind: KindSeq, coerce: coerceSeq}
)

var required = []string{KeyLength, KeyNoteNum, KeyLyric}

// PBType and PBStart are declared numbers rather than integers: real files
// carry fractional PBStart values.
var attributes = map[string]attrSpec{
	KeyLength:       numberSpec,
	KeyNoteNum:      {kind: KindNumber, intOnly: true, coerce: coerceNumber},
	KeyLyric:        stringSpec,
	KeyOverlap:      numberSpec,
	KeyPreUtterance: numberSpec,
	KeyStartPoint:   numberSpec,
	KeyTempo:        numberSpec,
	KeyModulation:   numberSpec,
	KeyIntensity:    numberSpec,
	KeyFlags:        stringSpec,
	KeyEnvelope:     {kind: KindEnvelope, coerce: coerceEnvelope},
	KeyEnvOverlap:   numberSpec,
	KeyEnvPreUttr:   numberSpec,
	KeyEnvStPoint:   numberSpec,
	KeyPBType:       numberSpec,
	KeyPBStart:      numberSpec,
	KeyPitchBend:    seqSpec,
	KeyPBW:          seqSpec,
	KeyPBY:          seqSpec,
	KeyPBS:          {kind: KindPair, coerce: coercePair},
	KeyVBR:          seqSpec,
}

// coerceAttr converts the raw text of a note attribute. Unknown keys stay
// strings.
func coerceAttr(key, raw string) (Value, error) {
	spec, ok := attributes[key]
	if !ok {
		return Str(raw), nil
	}
	return spec.coerce(raw)
}

func checkAttr(key string, v Value) error {
	spec, ok := attributes[key]
	if !ok {
		return nil
	}
	if v.Kind() != spec.kind {
		return &TypeMismatchError{Attr: key, Want: spec.kind, Got: v.Kind().String()}
	}
	if spec.intOnly {
		if n, _ := v.Number(); !n.IsInt() {
			return &TypeMismatchError{Attr: key, Want: spec.kind, Got: "non-integer number"}
		}
	}
	return nil
}
