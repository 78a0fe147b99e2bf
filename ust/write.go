package ust

import (
	"fmt"
	"io"
	"strings"
)

const (
	tagVersion  = "[#VERSION]"
	tagSetting  = "[#SETTING]"
	tagTrackEnd = "[#TRACKEND]"
)

func noteTag(i int) string {
	return fmt.Sprintf("[#%04d]", i)
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value.String())
		sb.WriteByte('\n')
	}
}

// String renders the sequence as a project file.
func (s *Sequence) String() string {
	var sb strings.Builder
	sb.WriteString(tagVersion + "\n")
	for _, line := range s.version {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(tagSetting + "\n")
	writeAttrs(&sb, s.settings.Attrs())
	for i, n := range s.notes {
		sb.WriteString(noteTag(i))
		sb.WriteByte('\n')
		writeAttrs(&sb, n.Attrs())
	}
	sb.WriteString(tagTrackEnd + "\n")
	return sb.String()
}

func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
