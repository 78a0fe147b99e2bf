package model

import (
	"github.com/jsphweid/ustkit/ust"
)

// Summary is the catalog view of one project.
type Summary struct {
	File        string  `json:"file" yaml:"file"`
	ProjectName string  `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	Tempo       float64 `json:"tempo" yaml:"tempo"`
	Notes       int     `json:"notes" yaml:"notes"`
	Voiced      int     `json:"voiced" yaml:"voiced"`
	Length      float64 `json:"length" yaml:"length"`
	High        *int    `json:"high,omitempty" yaml:"high,omitempty"`
	Low         *int    `json:"low,omitempty" yaml:"low,omitempty"`
	Size        int64   `json:"size,omitempty" yaml:"size,omitempty"`
}

func NewSummary(file string, s *ust.Sequence) Summary {
	sum := Summary{
		File:   file,
		Notes:  s.Count(),
		Length: s.Len(),
	}
	if tempo, ok := s.Settings().Tempo(); ok {
		sum.Tempo = tempo
	}
	if name, ok := s.Settings().Get("ProjectName"); ok {
		sum.ProjectName = name.String()
	}
	for _, n := range s.Notes() {
		if n.IsVoiced() {
			sum.Voiced++
		}
	}
	if high, low, err := s.Range(); err == nil {
		sum.High, sum.Low = &high, &low
	}
	return sum
}
