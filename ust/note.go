package ust

import (
	"strings"
)

// Note is one [#nnnn] block: an ordered set of attributes.
type Note struct {
	keys   []string
	values map[string]Value
}

// NewNote builds a note from attrs in order. Later duplicates overwrite the
// value but keep the first position.
func NewNote(attrs []Attr, opts ...Option) (*Note, error) {
	o := buildOptions(opts)
	n := &Note{values: make(map[string]Value, len(attrs))}
	for _, a := range attrs {
		n.Set(a.Key, a.Value)
	}
	if o.validate {
		if err := n.Validate(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (n *Note) Get(key string) (Value, bool) {
	v, ok := n.values[key]
	return v, ok
}

func (n *Note) Set(key string, v Value) {
	if n.values == nil {
		n.values = make(map[string]Value)
	}
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = v
}

func (n *Note) Delete(key string) {
	if _, ok := n.values[key]; !ok {
		return
	}
	delete(n.values, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

func (n *Note) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

func (n *Note) Keys() []string {
	return append([]string(nil), n.keys...)
}

func (n *Note) Attrs() []Attr {
	res := make([]Attr, 0, len(n.keys))
	for _, k := range n.keys {
		res = append(res, Attr{Key: k, Value: n.values[k]})
	}
	return res
}

// Len is the note's Length in ticks, or 0 when it has none.
func (n *Note) Len() float64 {
	v, _ := n.values[KeyLength].Number()
	return v.Float64()
}

func (n *Note) NoteNum() int {
	v, _ := n.values[KeyNoteNum].Number()
	return int(v.Int64())
}

func (n *Note) Lyric() string {
	s, _ := n.values[KeyLyric].Text()
	return s
}

// IsRestLyric reports whether lyric marks silence: empty or r/R.
func IsRestLyric(lyric string) bool {
	lyric = strings.TrimSpace(lyric)
	return lyric == "" || lyric == "r" || lyric == "R"
}

func (n *Note) IsRest() bool {
	return IsRestLyric(n.Lyric())
}

func (n *Note) IsVoiced() bool {
	return !n.IsRest()
}

func (n *Note) Validate() error {
	for _, key := range required {
		v, ok := n.values[key]
		if !ok {
			return &TypeMismatchError{Attr: key, Want: attributes[key].kind, Got: "nothing"}
		}
		if err := checkAttr(key, v); err != nil {
			return err
		}
	}
	for _, key := range n.keys {
		if err := checkAttr(key, n.values[key]); err != nil {
			return err
		}
	}
	return nil
}

func (n *Note) Clone() *Note {
	c := &Note{keys: n.Keys(), values: make(map[string]Value, len(n.values))}
	for k, v := range n.values {
		c.values[k] = v
	}
	return c
}

func (n *Note) Equal(o *Note) bool {
	if len(n.keys) != len(o.keys) {
		return false
	}
	for i, k := range n.keys {
		if o.keys[i] != k || !n.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// String renders one key=value per line in insertion order.
func (n *Note) String() string {
	var sb strings.Builder
	writeAttrs(&sb, n.Attrs())
	return strings.TrimSuffix(sb.String(), "\n")
}

func (n *Note) toNote(validate bool) (*Note, error) {
	return n, nil
}

// Row is a raw ordered attribute mapping. Sequences wrap rows into notes,
// validating them unless validation is switched off.
type Row []Attr

func (r Row) toNote(validate bool) (*Note, error) {
	if validate {
		return NewNote(r)
	}
	return NewNote(r, WithoutValidation())
}

// NoteLike is a *Note or a Row.
type NoteLike interface {
	toNote(validate bool) (*Note, error)
}
