package rewrite

import (
	"testing"

	"github.com/sant0-9/quill/internal/config"
)

func TestParseTone(t *testing.T) {
	tests := []struct {
		in      string
		want    Tone
		wantErr bool
	}{
		{"casual", ToneCasual, false},
		{"Witty", ToneWitty, false},
		{"  DRAMATIC ", ToneDramatic, false},
		{"sarcastic", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTone(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseTone(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParse_ByDisplayName(t *testing.T) {
	p, err := ParsePurpose("Cover Letter")
	if err != nil || p != PurposeCoverLetter {
		t.Errorf("ParsePurpose = %v, %v", p, err)
	}
	r, err := ParseReadability("phd / technical")
	if err != nil || r != ReadabilityPhD {
		t.Errorf("ParseReadability = %v, %v", r, err)
	}
	r, err = ParseReadability("high_school")
	if err != nil || r != ReadabilityHighSchool {
		t.Errorf("ParseReadability by id = %v, %v", r, err)
	}
}

func TestEnumNames(t *testing.T) {
	if got := PurposeEssay.String(); got != "Essay/Paper" {
		t.Errorf("PurposeEssay = %q", got)
	}
	if got := ReadabilitySimple.String(); got != "Simple (5th Grade)" {
		t.Errorf("ReadabilitySimple = %q", got)
	}
	if got := StrengthMaximum.ID(); got != "maximum" {
		t.Errorf("StrengthMaximum.ID = %q", got)
	}
	if len(Tones()) != 8 || len(Strengths()) != 4 || len(Purposes()) != 7 || len(Readabilities()) != 5 {
		t.Error("unexpected enum sizes")
	}
}

func TestStrength_Slider(t *testing.T) {
	if StrengthMaximum.Next() != StrengthMaximum {
		t.Error("Next past Maximum")
	}
	if StrengthLow.Prev() != StrengthLow {
		t.Error("Prev past Low")
	}
	if StrengthMedium.Next() != StrengthHigh || StrengthMedium.Prev() != StrengthLow {
		t.Error("slider steps wrong")
	}
}

func TestCycle(t *testing.T) {
	if ToneDramatic.Next() != ToneCasual {
		t.Error("tone does not wrap")
	}
	if PurposeMarketing.Next() != PurposeGeneral {
		t.Error("purpose does not wrap")
	}
	if ReadabilityPhD.Next() != ReadabilityStandard {
		t.Error("readability does not wrap")
	}
}

func TestOptions_Validate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := DefaultOptions()
	bad.Tone = Tone(42)
	bad.Readability = Readability(-1)
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.RewriteConfig{Tone: "academic", Strength: "Low"})
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultOptions()
	want.Tone = ToneAcademic
	want.Strength = StrengthLow
	if opts != want {
		t.Errorf("opts = %+v, want %+v", opts, want)
	}

	if _, err := OptionsFromConfig(config.RewriteConfig{Purpose: "haiku"}); err == nil {
		t.Error("expected error for unknown purpose")
	}
}

func TestSet_FlagValue(t *testing.T) {
	var s Strength
	if err := s.Set("maximum"); err != nil || s != StrengthMaximum {
		t.Errorf("Set = %v, %v", s, err)
	}
	if s.Type() != "strength" {
		t.Errorf("Type = %q", s.Type())
	}
	if err := s.Set("extreme"); err == nil {
		t.Error("expected error")
	}
}
