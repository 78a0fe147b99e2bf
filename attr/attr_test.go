package attr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberKeepsLexicalKind(t *testing.T) {
	cases := []struct {
		in    string
		isInt bool
		out   string
	}{
		{"480", true, "480"},
		{"-12", true, "-12"},
		{"120.0", false, "120.0"},
		{"0.5", false, "0.5"},
		{"-62.5", false, "-62.5"},
		{"1e3", false, "1000.0"},
		{" 7 ", true, "7"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, err := ParseNumber(c.in)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(c.isInt, n.IsInt())
			assert.Equal(c.out, n.String())
		})
	}
}

func TestFloatStringNotation(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{1000000, "1000000.0"},
		{123456789.25, "123456789.25"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{-2500000, "-2500000.0"},
		{0, "0.0"},
	}

	for _, c := range cases {
		assert.Equal(t, c.out, Float(c.in).String(), "%v", c.in)
	}
}

func TestParseNumberRejectsNonLiterals(t *testing.T) {
	for _, in := range []string{"", "abc", "1+1", "__import__", "inf", "NaN", "0x10", "1,2"} {
		_, err := ParseNumber(in)
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), "input %q", in)
	}
}

func TestSeqRoundTrip(t *testing.T) {
	cases := []string{
		"65,0,20,0,0,0,0,0",
		"-62.3,43.1,18.2",
		"1.5,-2,3",
		"0",
	}

	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			s, err := ParseSeq(in)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(in, s.String())

			again, err := ParseSeq(s.String())
			assert.NoError(err)
			assert.True(s.Equal(again))
		})
	}
}

func TestSeqEmptyFieldsBecomeZero(t *testing.T) {
	s, err := ParseSeq("1,,3,")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(Seq{Int(1), Int(0), Int(3), Int(0)}, s)
	assert.Equal("1,0,3,0", s.String())
}

func TestSeqBadToken(t *testing.T) {
	_, err := ParseSeq("1,x,3")
	var se *SyntaxError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "x", se.Token)
}

func TestEnvelopeKeepsMarker(t *testing.T) {
	in := "0,5,35,0,100,100,0,%,0,10,100"
	e, err := ParseEnvelope(in)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(e, 11)
	assert.True(e[7].Marker)
	assert.False(e[6].Marker)
	assert.Equal(in, e.String())

	again, err := ParseEnvelope(e.String())
	assert.NoError(err)
	assert.True(e.Equal(again))
}

func TestOffsetPair(t *testing.T) {
	p, err := ParseOffsetPair("-40;0.5")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(int64(-40), p.Time.Int64())
	assert.Equal(0.5, p.Pitch.Float64())
	assert.Equal("-40;0.5", p.String())

	p, err = ParseOffsetPair(";")
	assert.NoError(err)
	assert.True(p.Equal(Pair(Int(0), Int(0))))
	assert.Equal("0;0", p.String())
}

func TestOffsetPairSingleField(t *testing.T) {
	p, err := ParseOffsetPair("-25")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(int64(-25), p.Time.Int64())
	assert.True(p.Pitch.IsZero())
	assert.Equal("-25", p.String())
}

func TestOffsetPairTooManyFields(t *testing.T) {
	_, err := ParseOffsetPair("1;2;3")
	assert.True(t, errors.Is(err, ErrMalformedSequence))
}

func TestCodecRoundTripLaw(t *testing.T) {
	seqs := []Seq{
		{Int(1), Float(2.5), Int(-3)},
		{Float(0.1), Float(-1e-7)},
	}
	for i, s := range seqs {
		t.Run(fmt.Sprintf("seq %d", i), func(t *testing.T) {
			got, err := ParseSeq(s.String())
			assert.NoError(t, err)
			assert.True(t, s.Equal(got))
		})
	}

	pairs := []OffsetPair{Pair(Int(-40), Int(3)), Pair(Float(-12.5), Float(0.25))}
	for i, p := range pairs {
		t.Run(fmt.Sprintf("pair %d", i), func(t *testing.T) {
			got, err := ParseOffsetPair(p.String())
			assert.NoError(t, err)
			assert.True(t, p.Equal(got))
		})
	}
}
