package convert

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/ustkit/attr"
	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/ust"
	"github.com/pkg/errors"
)

// NN rows are positional. These are the columns the importer reads.
const (
	nnLyric      = 0
	nnAltLyric   = 1
	nnStart      = 2
	nnDuration   = 3
	nnPitch      = 4
	nnVbrLength  = 8
	nnVbrDepth   = 9
	nnVbrCycle   = 10
	nnPitchCurve = 12
	nnMinFields  = 13
)

var ErrNoHeader = errors.New("nn file has no header line")

type NNOptions struct {
	// UseAltLyric picks the second column (usually the phonetic spelling)
	// as the lyric.
	UseAltLyric bool

	// ThinStride drops flat pitch points whose index is not a multiple of
	// it. 0 keeps every point.
	ThinStride int
}

// RowError is a note row that could not be read.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("nn line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type nnNote struct {
	lyric    string
	start    int
	duration int
	pitch    int
	vbr      [3]int // length, depth, cycle
	curve    []int
}

func parseNNRow(fields []string, useAlt bool) (nnNote, error) {
	var n nnNote
	if len(fields) < nnMinFields {
		return n, errors.Errorf("want at least %d fields, got %d", nnMinFields, len(fields))
	}
	n.lyric = fields[nnLyric]
	if useAlt {
		n.lyric = fields[nnAltLyric]
	}

	ints := []struct {
		col int
		dst *int
	}{
		{nnStart, &n.start},
		{nnDuration, &n.duration},
		{nnPitch, &n.pitch},
		{nnVbrLength, &n.vbr[0]},
		{nnVbrDepth, &n.vbr[1]},
		{nnVbrCycle, &n.vbr[2]},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(fields[f.col])
		if err != nil {
			return n, errors.Wrapf(err, "field %d", f.col)
		}
		*f.dst = v
	}

	for _, tok := range strings.Split(fields[nnPitchCurve], ",") {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return n, errors.Wrapf(err, "field %d", nnPitchCurve)
		}
		n.curve = append(n.curve, v)
	}
	return n, nil
}

// restRow fills a gap of gap NN time units.
func restRow(gap int) ust.Row {
	return ust.Row{
		{Key: ust.KeyLyric, Value: ust.Str(constants.RestLyric)},
		{Key: ust.KeyLength, Value: ust.Int(int64(gap * constants.NNTickScale))},
		{Key: ust.KeyNoteNum, Value: ust.Int(constants.RestNoteNum)},
	}
}

func (n nnNote) row(thinStride int) ust.Row {
	length := n.duration * constants.NNTickScale

	pby := make(attr.Seq, len(n.curve))
	pbw := make(attr.Seq, len(n.curve))
	width := float64(length) / float64(len(n.curve))
	for i, s := range n.curve {
		pby[i] = attr.Float(float64(constants.NNPitchCenter-s) / constants.NNPitchUnit)
		pbw[i] = attr.Float(width)
	}
	pbw, pby = ThinPitchPoints(pbw, pby, thinStride)

	// project VBR order is length, cycle, depth
	vbr := attr.Seq{
		attr.Int(int64(n.vbr[0])),
		attr.Int(int64(n.vbr[2])),
		attr.Int(int64(n.vbr[1])),
		attr.Int(0), attr.Int(0), attr.Int(0), attr.Int(0), attr.Int(0),
	}

	return ust.Row{
		{Key: ust.KeyLyric, Value: ust.Str(n.lyric)},
		{Key: ust.KeyLength, Value: ust.Int(int64(length))},
		{Key: ust.KeyNoteNum, Value: ust.Int(int64(constants.NNPitchBase - n.pitch))},
		{Key: ust.KeyVBR, Value: ust.SeqOf(vbr)},
		{Key: ust.KeyPBW, Value: ust.SeqOf(pbw)},
		{Key: ust.KeyPBY, Value: ust.SeqOf(pby)},
		{Key: ust.KeyPBS, Value: ust.PairOf(attr.Pair(attr.Int(0), attr.Int(0)))},
	}
}

// ThinPitchPoints removes the PBY points that are exactly zero and whose
// index is not a multiple of stride, along with the PBW width at the same
// index. Non-zero points are always kept. A stride <= 0 keeps everything.
func ThinPitchPoints(pbw, pby attr.Seq, stride int) (attr.Seq, attr.Seq) {
	if stride <= 0 {
		return pbw, pby
	}
	var keptW, keptY attr.Seq
	for i, y := range pby {
		if y.IsZero() && i%stride != 0 {
			continue
		}
		keptY = append(keptY, y)
		if i < len(pbw) {
			keptW = append(keptW, pbw[i])
		}
	}
	return keptW, keptY
}

// FromNN reads a fixed-column note list. The first line holds the tempo,
// the second the note count (ignored), and each further line one note.
// Silence between notes becomes rest notes so the sequence has no gaps.
func FromNN(r io.Reader, opts NNOptions) (*ust.Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "could not read nn header")
		}
		return nil, ErrNoHeader
	}
	header := strings.Fields(scanner.Text())
	if len(header) == 0 {
		return nil, &RowError{Line: 1, Err: ErrNoHeader}
	}
	tempo, err := strconv.ParseFloat(header[0], 64)
	if err != nil {
		return nil, &RowError{Line: 1, Err: errors.Wrap(err, "tempo")}
	}

	// note count
	scanner.Scan()

	var rows []ust.NoteLike
	consumed := 0
	lineNo := 2
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		n, err := parseNNRow(fields, opts.UseAltLyric)
		if err != nil {
			return nil, &RowError{Line: lineNo, Err: err}
		}
		if n.start > consumed {
			gap := n.start - consumed
			rows = append(rows, restRow(gap))
			consumed += gap
		}
		rows = append(rows, n.row(opts.ThinStride))
		consumed += n.duration
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read nn file")
	}

	settings := ust.NewSettings(ust.Attr{Key: ust.SettingTempo, Value: ust.Float(tempo)})
	return ust.New(rows, ust.WithSettings(settings))
}
