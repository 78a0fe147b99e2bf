package attr

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	seqSep  = ","
	pairSep = ";"

	// EnvelopeMarker is the non-numeric token an envelope may carry in place
	// of a point, written between the fourth and fifth points.
	EnvelopeMarker = "%"
)

var ErrMalformedSequence = errors.New("malformed sequence")

// Seq is a comma-delimited list of numbers such as PBW, PBY or VBR.
type Seq []Number

func ParseSeq(s string) (Seq, error) {
	fields := strings.Split(s, seqSep)
	res := make(Seq, 0, len(fields))
	for _, tok := range fields {
		n, err := parseField(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (s Seq) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = n.String()
	}
	return strings.Join(parts, seqSep)
}

func (s Seq) Equal(o Seq) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// EnvelopePoint is either a number or the envelope marker.
type EnvelopePoint struct {
	Num    Number
	Marker bool
}

type Envelope []EnvelopePoint

func ParseEnvelope(s string) (Envelope, error) {
	fields := strings.Split(s, seqSep)
	res := make(Envelope, 0, len(fields))
	for _, tok := range fields {
		if strings.TrimSpace(tok) == EnvelopeMarker {
			res = append(res, EnvelopePoint{Marker: true})
			continue
		}
		n, err := parseField(tok)
		if err != nil {
			return nil, err
		}
		res = append(res, EnvelopePoint{Num: n})
	}
	return res, nil
}

func (e Envelope) String() string {
	parts := make([]string, len(e))
	for i, p := range e {
		if p.Marker {
			parts[i] = EnvelopeMarker
		} else {
			parts[i] = p.Num.String()
		}
	}
	return strings.Join(parts, seqSep)
}

func (e Envelope) Equal(o Envelope) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i].Marker != o[i].Marker || !e[i].Num.Equal(o[i].Num) {
			return false
		}
	}
	return true
}

// OffsetPair is the PBS value: where the pitch curve starts relative to the
// note, as a time offset and a pitch offset.
type OffsetPair struct {
	Time  Number
	Pitch Number

	// single is set when the source only carried the time offset.
	single bool
}

func Pair(time, pitch Number) OffsetPair {
	return OffsetPair{Time: time, Pitch: pitch}
}

func ParseOffsetPair(s string) (OffsetPair, error) {
	fields := strings.Split(s, pairSep)
	if len(fields) > 2 {
		return OffsetPair{}, errors.Wrapf(ErrMalformedSequence, "offset pair %q has %d fields, want at most 2", s, len(fields))
	}
	var p OffsetPair
	var err error
	if p.Time, err = parseField(fields[0]); err != nil {
		return OffsetPair{}, err
	}
	if len(fields) == 1 {
		p.Pitch = Int(0)
		p.single = true
		return p, nil
	}
	if p.Pitch, err = parseField(fields[1]); err != nil {
		return OffsetPair{}, err
	}
	return p, nil
}

func (p OffsetPair) String() string {
	if p.single && p.Pitch.IsZero() {
		return p.Time.String()
	}
	return p.Time.String() + pairSep + p.Pitch.String()
}

func (p OffsetPair) Equal(o OffsetPair) bool {
	return p.Time.Equal(o.Time) && p.Pitch.Equal(o.Pitch)
}
