package prompts

import (
	"strings"
	"testing"
)

func TestBuildLessonTiers(t *testing.T) {
	t.Parallel()
	p, err := Build(LessonTiers, Input{Topic: "The Water Cycle", Grade: "4", Tiers: 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, want := range []string{"The Water Cycle", "Number of Tiers: 3", "Language: English", `"tiers"`} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("user prompt missing %q", want)
		}
	}
	if strings.Contains(p.User, "Base Text to adapt") {
		t.Fatalf("base text section must be omitted when no base text is given")
	}
}

func TestBuildLessonTiersWithBaseText(t *testing.T) {
	t.Parallel()
	p, err := Build(LessonTiers, Input{Topic: "Magnets", Grade: "6", Tiers: 2, BaseText: "Magnets attract iron."})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(p.User, "Base Text to adapt") || !strings.Contains(p.User, "Magnets attract iron.") {
		t.Fatalf("base text section missing")
	}
}

func TestBuildLessonTiersValidation(t *testing.T) {
	t.Parallel()
	if _, err := Build(LessonTiers, Input{Topic: "", Tiers: 3}); err == nil {
		t.Fatalf("empty topic must fail validation")
	}
	if _, err := Build(LessonTiers, Input{Topic: "X", Tiers: 0}); err == nil {
		t.Fatalf("tiers=0 must fail validation")
	}
	if _, err := Build(LessonTiers, Input{Topic: "X", Tiers: 6}); err == nil {
		t.Fatalf("tiers=6 must fail validation")
	}
}

func TestBuildSpeechAnalysisAddendums(t *testing.T) {
	t.Parallel()
	p, err := Build(SpeechAnalysis, Input{
		Transcript:      "the the sun is a star",
		Mode:            "read_aloud",
		StammerFriendly: true,
		Neurodivergent:  true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(p.User, "STAMMER-FRIENDLY MODE IS ACTIVE") {
		t.Fatalf("stammer-friendly addendum missing")
	}
	if !strings.Contains(p.User, "NEURODIVERGENT-FRIENDLY MODE") {
		t.Fatalf("neurodivergent addendum missing")
	}
	if strings.Contains(p.User, "HEARING IMPAIRED MODE") {
		t.Fatalf("hearing addendum must only appear when enabled")
	}
}

func TestFingerprintStable(t *testing.T) {
	t.Parallel()
	in := Input{Topic: "Soil", Grade: "3", Tiers: 1}
	a, err := Build(LessonTiers, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, _ := Build(LessonTiers, in)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprint must be deterministic")
	}
	c, _ := Build(LessonTiers, Input{Topic: "Rocks", Grade: "3", Tiers: 1})
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different inputs must fingerprint differently")
	}
}

func TestBuildUnknownPrompt(t *testing.T) {
	t.Parallel()
	if _, err := Build(PromptName("nope"), Input{}); err == nil {
		t.Fatalf("unknown prompt must error")
	}
}
