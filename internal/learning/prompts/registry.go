package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type PromptName string

const (
	LessonTiers    PromptName = "lesson_tiers"
	SpeechAnalysis PromptName = "speech_analysis"
)

// Input is a superset of all fields any prompt might need. Unused fields
// render as empty sections.
type Input struct {
	Topic    string
	Grade    string
	Tiers    int
	Language string
	BaseText string

	Transcript      string
	Mode            string
	StammerFriendly bool
	HearingImpaired bool
	Neurodivergent  bool
}

type Validator func(Input) error

type Template struct {
	Name     PromptName
	Version  int
	System   func(Input) string
	User     func(Input) string
	Validate Validator
}

// Prompt is a fully rendered prompt pair ready for the text generator.
type Prompt struct {
	Name    string
	Version int
	System  string
	User    string
}

// Fingerprint identifies the rendered prompt for logging and call records.
func (p Prompt) Fingerprint() string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s|%d|%s|%s", p.Name, p.Version, p.System, p.User)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

var registry = map[PromptName]Template{}

func Register(t Template) {
	registry[t.Name] = t
}

// Build renders a registered template against in.
func Build(name PromptName, in Input) (Prompt, error) {
	t, ok := registry[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.System == nil || t.User == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing system/user renderers", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}
	return Prompt{
		Name:    string(t.Name),
		Version: t.Version,
		System:  strings.TrimSpace(t.System(in)),
		User:    strings.TrimSpace(t.User(in)),
	}, nil
}
