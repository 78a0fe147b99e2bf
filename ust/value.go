package ust

import (
	"github.com/jsphweid/ustkit/attr"
)

type Kind uint8

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindSeq
	KindEnvelope
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSeq:
		return "sequence"
	case KindEnvelope:
		return "envelope"
	case KindPair:
		return "offset pair"
	}
	return "unknown"
}

// Value is one attribute or setting value. Only the field matching Kind is
// meaningful.
type Value struct {
	kind Kind
	num  attr.Number
	str  string
	b    bool
	seq  attr.Seq
	env  attr.Envelope
	pair attr.OffsetPair
}

func Int(v int64) Value {
	return Value{kind: KindNumber, num: attr.Int(v)}
}

func Float(v float64) Value {
	return Value{kind: KindNumber, num: attr.Float(v)}
}

func Num(n attr.Number) Value {
	return Value{kind: KindNumber, num: n}
}

func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func SeqOf(s attr.Seq) Value {
	return Value{kind: KindSeq, seq: s}
}

func EnvelopeOf(e attr.Envelope) Value {
	return Value{kind: KindEnvelope, env: e}
}

func PairOf(p attr.OffsetPair) Value {
	return Value{kind: KindPair, pair: p}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Number() (attr.Number, bool) { return v.num, v.kind == KindNumber }

func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) Seq() (attr.Seq, bool) { return v.seq, v.kind == KindSeq }

func (v Value) Envelope() (attr.Envelope, bool) { return v.env, v.kind == KindEnvelope }

func (v Value) Pair() (attr.OffsetPair, bool) { return v.pair, v.kind == KindPair }

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num.Equal(o.num)
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindSeq:
		return v.seq.Equal(o.seq)
	case KindEnvelope:
		return v.env.Equal(o.env)
	case KindPair:
		return v.pair.Equal(o.pair)
	}
	return false
}

// String is the form written after "key=" in a project file.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindSeq:
		return v.seq.String()
	case KindEnvelope:
		return v.env.String()
	case KindPair:
		return v.pair.String()
	}
	return ""
}

// Attr is one key=value line.
type Attr struct {
	Key   string
	Value Value
}
