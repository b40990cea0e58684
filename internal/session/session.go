// Package session models the state of one interactive editing session as an
// immutable value. Every transition returns a new State; the receiver is
// never modified.
package session

import (
	"errors"
	"strings"

	"github.com/sant0-9/quill/internal/detect"
	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/rewrite"
)

var (
	// ErrBusy is returned when a rewrite or check is already running.
	ErrBusy = errors.New("a request is already in progress")
	// ErrNoOutput is returned by operations that need a finished rewrite.
	ErrNoOutput = errors.New("nothing to work with yet")
)

type Phase int

const (
	Idle Phase = iota
	Streaming
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type View int

const (
	ViewText View = iota
	ViewDiff
)

type State struct {
	input     string
	options   rewrite.Options
	output    string
	parts     []diff.Part
	phase     Phase
	view      View
	err       error
	history   []history.Entry
	detection *detect.Result
	detecting bool
}

func New(opts rewrite.Options) State {
	return State{options: opts}
}

func (s State) Input() string            { return s.input }
func (s State) Options() rewrite.Options { return s.options }
func (s State) Output() string           { return s.output }
func (s State) Phase() Phase             { return s.phase }
func (s State) View() View               { return s.view }
func (s State) Err() error               { return s.err }
func (s State) Streaming() bool          { return s.phase == Streaming }
func (s State) Detecting() bool          { return s.detecting }

// History returns a copy of the loaded history entries.
func (s State) History() []history.Entry {
	return append([]history.Entry(nil), s.history...)
}

// Detection returns the last check result, if any.
func (s State) Detection() (detect.Result, bool) {
	if s.detection == nil {
		return detect.Result{}, false
	}
	return *s.detection, true
}

// HasOutput reports whether a finished rewrite is available.
func (s State) HasOutput() bool {
	return s.phase == Done && s.output != ""
}

// Parts returns the word diff between input and output. It is only
// available once the output is complete.
func (s State) Parts() []diff.Part {
	if !s.HasOutput() {
		return nil
	}
	if s.parts != nil {
		return append([]diff.Part(nil), s.parts...)
	}
	return diff.Compute(s.input, s.output)
}

func (s State) WithInput(text string) State {
	s.input = text
	return s
}

func (s State) WithOptions(opts rewrite.Options) State {
	s.options = opts
	return s
}

// Begin starts a rewrite of the current input.
func (s State) Begin() (State, error) {
	if s.phase == Streaming {
		return s, ErrBusy
	}
	if strings.TrimSpace(s.input) == "" {
		return s, rewrite.ErrEmptyInput
	}
	s.phase = Streaming
	s.output = ""
	s.parts = nil
	s.view = ViewText
	s.err = nil
	s.detection = nil
	s.detecting = false
	return s, nil
}

// Chunk appends streamed text. Chunks outside a stream are dropped.
func (s State) Chunk(text string) State {
	if s.phase != Streaming {
		return s
	}
	s.output += text
	return s
}

// Complete finishes the stream with the authoritative result.
func (s State) Complete(res *rewrite.Result) State {
	if s.phase != Streaming || res == nil {
		return s
	}
	s.phase = Done
	s.output = res.Rewritten
	if len(res.Parts) > 0 {
		s.parts = append([]diff.Part(nil), res.Parts...)
	} else {
		s.parts = diff.Compute(s.input, s.output)
	}
	return s
}

// Fail ends the stream with err. Partial output is discarded.
func (s State) Fail(err error) State {
	s.phase = Failed
	s.err = err
	s.output = ""
	s.parts = nil
	s.view = ViewText
	return s
}

// Cancel abandons a running stream.
func (s State) Cancel() State {
	if s.phase != Streaming {
		return s
	}
	s.phase = Idle
	s.output = ""
	return s
}

func (s State) DismissError() State {
	if s.phase == Failed {
		s.phase = Idle
	}
	s.err = nil
	return s
}

// Clear empties input and output. It is ignored while streaming.
func (s State) Clear() State {
	if s.phase == Streaming {
		return s
	}
	s.input = ""
	s.output = ""
	s.parts = nil
	s.phase = Idle
	s.view = ViewText
	s.err = nil
	s.detection = nil
	s.detecting = false
	return s
}

// ToggleView switches between plain output and the diff. The diff view is
// only reachable with complete output.
func (s State) ToggleView() State {
	if s.view == ViewDiff {
		s.view = ViewText
		return s
	}
	if s.HasOutput() {
		s.view = ViewDiff
	}
	return s
}

// LoadEntry restores a history entry as the current input and output.
func (s State) LoadEntry(e history.Entry) (State, error) {
	if s.phase == Streaming {
		return s, ErrBusy
	}
	s.input = e.Original
	s.output = e.Humanized
	s.parts = diff.Compute(e.Original, e.Humanized)
	s.phase = Done
	s.view = ViewText
	s.err = nil
	s.detection = nil
	s.detecting = false
	if t, err := rewrite.ParseTone(e.Tone); err == nil {
		s.options.Tone = t
	}
	if st, err := rewrite.ParseStrength(e.Strength); err == nil {
		s.options.Strength = st
	}
	return s, nil
}

func (s State) WithHistory(entries []history.Entry) State {
	s.history = append([]history.Entry(nil), entries...)
	return s
}

// BeginDetection marks a check of the output as running.
func (s State) BeginDetection() (State, error) {
	if s.detecting || s.phase == Streaming {
		return s, ErrBusy
	}
	if !s.HasOutput() {
		return s, ErrNoOutput
	}
	s.detecting = true
	s.detection = nil
	return s, nil
}

func (s State) WithDetection(r detect.Result) State {
	s.detecting = false
	s.detection = &r
	return s
}

func (s State) ResetDetection() State {
	s.detecting = false
	s.detection = nil
	return s
}
