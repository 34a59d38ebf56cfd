package motion

import "io"

// ScriptedSource replays a fixed sequence of samples. When Repeat is
// set the last sample is returned forever, otherwise io.EOF is
// returned once the sequence is exhausted.
type ScriptedSource struct {
	Samples []RawSample
	Repeat  bool

	pos int
}

// NewScriptedSource creates a ScriptedSource which repeats the last sample.
func NewScriptedSource(samples ...RawSample) *ScriptedSource {
	return &ScriptedSource{Samples: samples, Repeat: true}
}

// Constant returns a ScriptedSource which always reads s.
func Constant(s RawSample) *ScriptedSource {
	return NewScriptedSource(s)
}

// Read implements Source.
func (s *ScriptedSource) Read() (RawSample, error) {
	if s.pos < len(s.Samples) {
		sample := s.Samples[s.pos]
		s.pos++
		return sample, nil
	}
	if s.Repeat && len(s.Samples) > 0 {
		return s.Samples[len(s.Samples)-1], nil
	}
	return RawSample{}, io.EOF
}

// Reads returns how many samples have been consumed from the sequence.
func (s *ScriptedSource) Reads() int {
	return s.pos
}
