package prompts

import (
	"fmt"
	"strings"
)

const lessonTiersSystem = `You are an expert curriculum designer specializing in differentiated instruction.
Your task is to generate reading passages and comprehension questions at multiple difficulty tiers for K-12 students.
Always output strict JSON — no markdown, no prose outside the JSON envelope.`

const lessonTiersUserTemplate = `Generate a differentiated reading lesson with the following parameters:
- Topic: %s
- Grade Level: %s
- Number of Tiers: %d
- Language: %s
%s

Output JSON with this exact structure:
{
  "tiers": [
    {
      "level": 1,
      "label": "Foundational",
      "passage": "<100-150 word passage, very simple vocabulary>",
      "questions": ["Q1", "Q2", "Q3"]
    },
    {
      "level": 2,
      "label": "Grade-Level",
      "passage": "<200-250 word passage, grade-appropriate>",
      "questions": ["Q1", "Q2", "Q3", "Q4"]
    },
    {
      "level": 3,
      "label": "Advanced",
      "passage": "<300-350 word passage, enriched vocabulary and analysis>",
      "questions": ["Q1", "Q2", "Q3", "Q4", "Q5"]
    }
  ]
}

Rules:
- Tiers should escalate in vocabulary complexity, passage length, and question depth.
- Questions at Tier 1: recall only. Tier 2: recall + inference. Tier 3: analysis + synthesis.
- If fewer than 3 tiers requested, omit higher tiers.
- Use inclusive, culturally neutral language.
- Output ONLY the JSON object. No additional text.`

const speechAnalysisSystem = `You are an expert English language coach providing structured feedback to students.
Always output strict JSON. Be encouraging and constructive — never use harsh or discouraging language.`

const speechAnalysisUserTemplate = `Analyze the following student speech transcript and provide detailed feedback.

Mode: %s
Transcript:
"""
%s
"""

%s

Score the student on a scale of 0-10 for each dimension, and identify specific word/phrase-level issues.

Output JSON with this exact structure:
{
  "scores": {
    "fluency": <0-10>,
    "grammar": <0-10>,
    "confidence": <0-10>,
    "pronunciation": <0-10>
  },
  "feedback_text": "<2-3 sentences of supportive, actionable feedback>",
  "word_marks": [
    {"word": "<word>", "issue": "<mispronounced|grammar|hesitation>", "suggestion": "<correction>"}
  ],
  "strengths": ["<strength 1>", "<strength 2>"],
  "next_steps": ["<step 1>", "<step 2>"]
}

Rules:
- feedback_text must be warm, supportive, and end on a positive note.
- word_marks should identify at most 5 issues — focus on the most impactful ones.
- If transcript is empty or inaudible, set all scores to 0 and feedback_text to an encouraging retry message.`

const stammerFriendlyAddendum = `IMPORTANT — STAMMER-FRIENDLY MODE IS ACTIVE:
- Do NOT penalize repetitions, prolongations, or blocks in the fluency score.
- Do NOT mark hesitations (um, uh, repeated words) as issues in word_marks.
- Score fluency based on overall intelligibility and content clarity ONLY.
- In feedback_text, do NOT mention stuttering, stammering, or hesitations.
- Focus exclusively on grammar and vocabulary strengths.`

const hearingImpairedAddendum = `ACCESSIBILITY NOTE — HEARING IMPAIRED MODE:
- Ensure feedback_text is detailed and visual (suitable for reading, not hearing).
- Provide an extra-detailed word_marks list with precise suggestions.
- Include a rubric-style breakdown within feedback_text.`

const neurodivergentAddendum = `ACCESSIBILITY NOTE — NEURODIVERGENT-FRIENDLY MODE:
- Keep feedback_text very short (max 2 sentences), positive, and direct.
- Use simple, concrete language — avoid abstract phrases.
- next_steps must be a single, concrete action item, not a list of improvements.
- Do NOT use any negative framing. Replace "You need to improve X" with "Try practising X".
- Celebrate effort explicitly in feedback_text.`

func init() {
	Register(Template{
		Name:    LessonTiers,
		Version: 1,
		System:  func(Input) string { return lessonTiersSystem },
		User: func(in Input) string {
			baseTextSection := ""
			if strings.TrimSpace(in.BaseText) != "" {
				baseTextSection = fmt.Sprintf("- Base Text to adapt: ```%s```", in.BaseText)
			}
			language := in.Language
			if language == "" {
				language = "English"
			}
			return fmt.Sprintf(lessonTiersUserTemplate, in.Topic, in.Grade, in.Tiers, language, baseTextSection)
		},
		Validate: func(in Input) error {
			if strings.TrimSpace(in.Topic) == "" {
				return fmt.Errorf("topic is required")
			}
			if in.Tiers < 1 || in.Tiers > 5 {
				return fmt.Errorf("tiers must be between 1 and 5, got %d", in.Tiers)
			}
			return nil
		},
	})

	Register(Template{
		Name:    SpeechAnalysis,
		Version: 1,
		System:  func(Input) string { return speechAnalysisSystem },
		User: func(in Input) string {
			var addendums []string
			if in.StammerFriendly {
				addendums = append(addendums, stammerFriendlyAddendum)
			}
			if in.HearingImpaired {
				addendums = append(addendums, hearingImpairedAddendum)
			}
			if in.Neurodivergent {
				addendums = append(addendums, neurodivergentAddendum)
			}
			mode := in.Mode
			if mode == "" {
				mode = "free_practice"
			}
			return fmt.Sprintf(speechAnalysisUserTemplate, mode, in.Transcript, strings.Join(addendums, "\n\n"))
		},
	})
}
