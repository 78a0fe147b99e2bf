package ust

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/jsphweid/ustkit/attr"
	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/textenc"
	"github.com/pkg/errors"
)

type parseState uint8

const (
	stateNone parseState = iota
	stateVersion
	stateSetting
	stateNote
)

var noteTagRe = regexp.MustCompile(`^\[#\w{4}\]`)

var errNoEquals = errors.New("line is not key=value")

type rawLine struct {
	line  int
	key   string
	value string
}

// parser holds the buffers of one pass over a project file.
type parser struct {
	state   parseState
	seen    int
	flushed int

	version []string
	setting []rawLine
	current []rawLine
	notes   [][]rawLine
}

func (p *parser) flush() {
	if len(p.current) > 0 {
		p.notes = append(p.notes, p.current)
		p.current = nil
	}
}

func splitKV(lineNo int, line string) (rawLine, error) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return rawLine{}, &ParseError{Line: lineNo, Value: line, Err: errNoEquals}
	}
	return rawLine{
		line:  lineNo,
		key:   strings.TrimSpace(line[:i]),
		value: strings.TrimSpace(line[i+1:]),
	}, nil
}

func (p *parser) tag(tag string) {
	switch {
	case tag == tagVersion:
		p.flush()
		p.state = stateVersion
	case tag == tagSetting:
		p.flush()
		p.state = stateSetting
	case tag == tagTrackEnd:
		p.flush()
		p.state = stateNone
	case noteTagRe.MatchString(tag):
		p.state = stateNote
		p.seen++
	}
}

func (p *parser) line(lineNo int, line string) error {
	switch p.state {
	case stateVersion:
		p.version = append(p.version, line)
	case stateSetting:
		kv, err := splitKV(lineNo, line)
		if err != nil {
			return err
		}
		p.setting = append(p.setting, kv)
	case stateNote:
		if p.seen > p.flushed {
			p.flushed = p.seen
			p.flush()
		}
		kv, err := splitKV(lineNo, line)
		if err != nil {
			return err
		}
		p.current = append(p.current, kv)
	}
	return nil
}

// Parse reads a project file that is already decoded to UTF-8 text.
func Parse(r io.Reader) (*Sequence, error) {
	var p parser
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[#") {
			p.tag(line)
			continue
		}
		if err := p.line(lineNo, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read project")
	}
	p.flush()

	settings, err := buildSettings(p.setting)
	if err != nil {
		return nil, err
	}

	rows := make([]NoteLike, 0, len(p.notes))
	for _, buf := range p.notes {
		row, err := buildRow(buf)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	seq, err := New(nil, WithVersion(p.version...), WithSettings(settings))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := seq.Append(row); err != nil {
			return nil, errors.Wrapf(err, "note %d", i)
		}
	}
	return seq, nil
}

func ParseString(s string) (*Sequence, error) {
	return Parse(strings.NewReader(s))
}

// ParseBytes detects the encoding of raw before parsing it.
func ParseBytes(raw []byte) (*Sequence, error) {
	name, err := textenc.Detect(raw)
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(raw, name)
	if err != nil {
		return nil, err
	}
	return ParseString(text)
}

// buildRow coerces one note block. Empty values of typed attributes carry
// nothing and are dropped; empty strings are kept.
func buildRow(buf []rawLine) (Row, error) {
	row := make(Row, 0, len(buf))
	for _, kv := range buf {
		if spec, ok := attributes[kv.key]; ok && kv.value == "" && spec.kind != KindString {
			continue
		}
		v, err := coerceAttr(kv.key, kv.value)
		if err != nil {
			return nil, &ParseError{Line: kv.line, Key: kv.key, Value: kv.value, Err: err}
		}
		row = append(row, Attr{Key: kv.key, Value: v})
	}
	return row, nil
}

func buildSettings(buf []rawLine) (*Settings, error) {
	s := NewSettings()
	for _, kv := range buf {
		v, err := coerceSetting(kv.key, kv.value)
		if err != nil {
			return nil, &ParseError{Line: kv.line, Key: kv.key, Value: kv.value, Err: err}
		}
		s.Set(kv.key, v)
	}
	return s, nil
}

func coerceSetting(key, raw string) (Value, error) {
	if raw == "" {
		return Str(raw), nil
	}
	switch key {
	case SettingTempo:
		n, err := attr.ParseNumber(raw)
		if err != nil {
			return Value{}, err
		}
		if n.Float64() > constants.MaxTempo {
			return Int(constants.DefaultTempo), nil
		}
		return Num(n), nil
	case SettingTracks:
		return coerceNumber(raw)
	case SettingMode2:
		switch strings.ToLower(raw) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return coerceNumber(raw)
	}
	return Str(raw), nil
}
