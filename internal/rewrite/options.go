package rewrite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sant0-9/quill/internal/config"
)

type label struct {
	id   string
	name string
}

func parseLabel(labels []label, kind, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, l := range labels {
		if strings.EqualFold(s, l.id) || strings.EqualFold(s, l.name) {
			return i, nil
		}
	}
	ids := make([]string, len(labels))
	for i, l := range labels {
		ids[i] = l.id
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", kind, s, strings.Join(ids, ", "))
}

func nameOf(labels []label, i int) string {
	if i < 0 || i >= len(labels) {
		return fmt.Sprintf("%d", i)
	}
	return labels[i].name
}

func idOf(labels []label, i int) string {
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i].id
}

// Tone is the voice of the rewrite.
type Tone int

const (
	ToneCasual Tone = iota
	ToneProfessional
	ToneFriendly
	ToneConfident
	ToneEmpathetic
	ToneAcademic
	ToneWitty
	ToneDramatic
)

var toneLabels = []label{
	{"casual", "Casual"},
	{"professional", "Professional"},
	{"friendly", "Friendly"},
	{"confident", "Confident"},
	{"empathetic", "Empathetic"},
	{"academic", "Academic"},
	{"witty", "Witty"},
	{"dramatic", "Dramatic"},
}

func Tones() []Tone {
	out := make([]Tone, len(toneLabels))
	for i := range out {
		out[i] = Tone(i)
	}
	return out
}

func ParseTone(s string) (Tone, error) {
	i, err := parseLabel(toneLabels, "tone", s)
	return Tone(i), err
}

func (t Tone) String() string { return nameOf(toneLabels, int(t)) }
func (t Tone) ID() string     { return idOf(toneLabels, int(t)) }
func (t Tone) Valid() bool    { return t >= 0 && int(t) < len(toneLabels) }
func (t Tone) Next() Tone     { return Tone((int(t) + 1) % len(toneLabels)) }

// Set and Type make *Tone usable as a command-line flag value.
func (t *Tone) Set(s string) error {
	v, err := ParseTone(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *Tone) Type() string { return "tone" }

// Strength is how far the rewrite may depart from the input. Ordered.
type Strength int

const (
	StrengthLow Strength = iota
	StrengthMedium
	StrengthHigh
	StrengthMaximum
)

var strengthLabels = []label{
	{"low", "Low"},
	{"medium", "Medium"},
	{"high", "High"},
	{"maximum", "Maximum"},
}

func Strengths() []Strength {
	out := make([]Strength, len(strengthLabels))
	for i := range out {
		out[i] = Strength(i)
	}
	return out
}

func ParseStrength(s string) (Strength, error) {
	i, err := parseLabel(strengthLabels, "strength", s)
	return Strength(i), err
}

func (s Strength) String() string { return nameOf(strengthLabels, int(s)) }
func (s Strength) ID() string     { return idOf(strengthLabels, int(s)) }
func (s Strength) Valid() bool    { return s >= 0 && int(s) < len(strengthLabels) }

// Next and Prev move along the slider and stop at the ends.
func (s Strength) Next() Strength { return min(s+1, StrengthMaximum) }
func (s Strength) Prev() Strength { return max(s-1, StrengthLow) }

func (s *Strength) Set(v string) error {
	p, err := ParseStrength(v)
	if err != nil {
		return err
	}
	*s = p
	return nil
}

func (s *Strength) Type() string { return "strength" }

// Purpose is the kind of document being rewritten.
type Purpose int

const (
	PurposeGeneral Purpose = iota
	PurposeEssay
	PurposeEmail
	PurposeBlog
	PurposeStory
	PurposeCoverLetter
	PurposeMarketing
)

var purposeLabels = []label{
	{"general", "General"},
	{"essay", "Essay/Paper"},
	{"email", "Email"},
	{"blog", "Blog/Article"},
	{"story", "Creative Story"},
	{"cover_letter", "Cover Letter"},
	{"marketing", "Marketing Copy"},
}

func Purposes() []Purpose {
	out := make([]Purpose, len(purposeLabels))
	for i := range out {
		out[i] = Purpose(i)
	}
	return out
}

func ParsePurpose(s string) (Purpose, error) {
	i, err := parseLabel(purposeLabels, "purpose", s)
	return Purpose(i), err
}

func (p Purpose) String() string { return nameOf(purposeLabels, int(p)) }
func (p Purpose) ID() string     { return idOf(purposeLabels, int(p)) }
func (p Purpose) Valid() bool    { return p >= 0 && int(p) < len(purposeLabels) }
func (p Purpose) Next() Purpose  { return Purpose((int(p) + 1) % len(purposeLabels)) }

func (p *Purpose) Set(s string) error {
	v, err := ParsePurpose(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Purpose) Type() string { return "purpose" }

// Readability is the target reading level.
type Readability int

const (
	ReadabilityStandard Readability = iota
	ReadabilitySimple
	ReadabilityHighSchool
	ReadabilityUniversity
	ReadabilityPhD
)

var readabilityLabels = []label{
	{"standard", "Standard"},
	{"simple", "Simple (5th Grade)"},
	{"high_school", "High School"},
	{"university", "University"},
	{"phd", "PhD / Technical"},
}

func Readabilities() []Readability {
	out := make([]Readability, len(readabilityLabels))
	for i := range out {
		out[i] = Readability(i)
	}
	return out
}

func ParseReadability(s string) (Readability, error) {
	i, err := parseLabel(readabilityLabels, "readability", s)
	return Readability(i), err
}

func (r Readability) String() string    { return nameOf(readabilityLabels, int(r)) }
func (r Readability) ID() string        { return idOf(readabilityLabels, int(r)) }
func (r Readability) Valid() bool       { return r >= 0 && int(r) < len(readabilityLabels) }
func (r Readability) Next() Readability { return Readability((int(r) + 1) % len(readabilityLabels)) }

func (r *Readability) Set(s string) error {
	v, err := ParseReadability(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r *Readability) Type() string { return "readability" }

// Options are the user-chosen settings for one rewrite.
type Options struct {
	Tone        Tone
	Strength    Strength
	Purpose     Purpose
	Readability Readability
}

func DefaultOptions() Options {
	return Options{
		Tone:        ToneCasual,
		Strength:    StrengthHigh,
		Purpose:     PurposeGeneral,
		Readability: ReadabilityStandard,
	}
}

func (o Options) Validate() error {
	var errs []error
	if !o.Tone.Valid() {
		errs = append(errs, fmt.Errorf("invalid tone %d", o.Tone))
	}
	if !o.Strength.Valid() {
		errs = append(errs, fmt.Errorf("invalid strength %d", o.Strength))
	}
	if !o.Purpose.Valid() {
		errs = append(errs, fmt.Errorf("invalid purpose %d", o.Purpose))
	}
	if !o.Readability.Valid() {
		errs = append(errs, fmt.Errorf("invalid readability %d", o.Readability))
	}
	return errors.Join(errs...)
}

// OptionsFromConfig parses the configured defaults. Empty fields keep
// DefaultOptions values.
func OptionsFromConfig(cfg config.RewriteConfig) (Options, error) {
	opts := DefaultOptions()
	var errs []error
	if cfg.Tone != "" {
		errs = append(errs, opts.Tone.Set(cfg.Tone))
	}
	if cfg.Strength != "" {
		errs = append(errs, opts.Strength.Set(cfg.Strength))
	}
	if cfg.Purpose != "" {
		errs = append(errs, opts.Purpose.Set(cfg.Purpose))
	}
	if cfg.Readability != "" {
		errs = append(errs, opts.Readability.Set(cfg.Readability))
	}
	if err := errors.Join(errs...); err != nil {
		return DefaultOptions(), fmt.Errorf("rewrite config: %w", err)
	}
	return opts, nil
}
