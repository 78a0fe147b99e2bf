package ust

// Settings is the ordered [#SETTING] block.
type Settings struct {
	keys   []string
	values map[string]Value
}

func NewSettings(attrs ...Attr) *Settings {
	s := &Settings{values: make(map[string]Value, len(attrs))}
	for _, a := range attrs {
		s.Set(a.Key, a.Value)
	}
	return s
}

// DefaultSettings is what a sequence gets when none is given.
func DefaultSettings() *Settings {
	return NewSettings(Attr{Key: SettingUstVersion, Value: Float(1.2)})
}

func (s *Settings) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Settings) Set(key string, v Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

func (s *Settings) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *Settings) Len() int {
	return len(s.keys)
}

func (s *Settings) Attrs() []Attr {
	res := make([]Attr, 0, len(s.keys))
	for _, k := range s.keys {
		res = append(res, Attr{Key: k, Value: s.values[k]})
	}
	return res
}

// Tempo returns the Tempo setting, if it is a number.
func (s *Settings) Tempo() (float64, bool) {
	v, ok := s.values[SettingTempo]
	if !ok {
		return 0, false
	}
	n, ok := v.Number()
	return n.Float64(), ok
}

func (s *Settings) Clone() *Settings {
	return NewSettings(s.Attrs()...)
}

func (s *Settings) Equal(o *Settings) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}
	for i, k := range s.keys {
		if o.keys[i] != k || !s.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}
