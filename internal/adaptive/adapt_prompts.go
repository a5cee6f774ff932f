package adaptive

import "fmt"

const adaptPassageSystemPrompt = `You are an expert special education teacher and instructional designer.
Your task is to take a standard educational passage and strictly rewrite it to accommodate a specific student's neurodivergent or disability profile, and their preferred learning style.
Do NOT change the core educational facts, but deeply transform the presentation, vocabulary, structure, and formatting.
Always output strict JSON — no markdown fences, no prose outside the JSON envelope.

The output JSON must have this exact structure:
{
  "adapted_passage": "<the fully rewritten and formatted text>"
}`

const adaptPassageUserTemplate = `Adapt the following educational text.

Student's Primary Disability/Need: %s
Student's Preferred Learning Style: %s

Original Text:
"""
%s
"""

Apply the following specific adaptation rules based on their profile:
%s`

const rulesADHD = `ADHD RULES:
- Break the text into very short, punchy paragraphs (2-3 sentences max).
- Use bullet points aggressively to convey lists or sequences.
- Bold the most critical keywords or concepts to draw the eye.
- Remove unnecessary filler words, fluff, or overly complex tangent sentences.
- Include a "TL;DR" (Too Long; Didn't Read) or "Quick Summary" sentence at the very beginning.`

const rulesAutism = `AUTISM SPECTRUM RULES:
- Use clear, literal, and highly explicit language. Avoid idioms, sarcasm, or highly abstract metaphors.
- Emphasize predictability: Use clear headings for every section (e.g., "What This Is About", "How It Works", "Why It Matters").
- Sensory-friendly: Avoid evoking overwhelming sensory imagery (loud noises, intense textures) unless educationally necessary.
- Number steps logically if describing a process.`

const rulesDyslexia = `DYSLEXIA RULES:
- Use simple, direct sentence structures (Subject-Verb-Object).
- Avoid passive voice entirely.
- Keep vocabulary decodable where possible; if a complex domain word is used, define it immediately in simple terms in parentheses.
- Use wide spacing between concepts (represent with blank lines).
- Avoid 'wall of text' layouts at all costs.`

const rulesVisual = `VISUAL IMPAIRMENT RULES:
- The text is likely going to be read by a Screen Reader (TTS).
- Ensure absolutely descriptive language. If the original text refers to "this diagram" or "like this", you MUST replace it with a full verbal description of the concept.
- Spell out abbreviations or complex symbols on first use.
- Structure with clear, semantic-sounding transitions so the listener doesn't get lost in the audio stream.`

const rulesHearing = `HEARING IMPAIRMENT RULES:
- The student cannot rely on audio cues.
- Ensure all information is visually structured in the text.
- If the original text mentions "listen to the sound of" or relies on auditory examples (e.g., "it sounds like a train"), replace the analogy with a visual or physical analogy (e.g., "it vibrates powerfully like a passing train").
- Use rich visual imagery.`

const rulesIntellectual = `INTELLECTUAL DISABILITY RULES:
- Greatly simplify the vocabulary. Use high-frequency, everyday words.
- Reduce cognitive load: Focus ONLY on 1 or 2 main takeaways. Cut out excessive historical dates, minor figures, or tertiary details.
- Use a friendly, encouraging tone.
- Add frequent, short rhetorical questions to keep the reader engaged (e.g., "Can you imagine that?").`

const rulesMotor = `MOTOR / PHYSICAL DISABILITY RULES:
- Content length is fine, but avoid implying physical actions the student might not easily do (e.g., instead of "Now take your pen and draw a quick map", say "Imagine a map in your mind").
- Keep the narrative engaging and focused on cognitive exploration rather than physical manipulation.`

const rulesSpeech = `SPEECH / STAMMERING RULES:
- Since the student may be asked to read this aloud later, avoid intense clusters of difficult-to-pronounce words or complex tongue-twisters.
- Keep sentence length relatively short to allow for natural breathing pauses.
- Use rhythmic, flowing sentence construction.`

const rulesGeneral = `GENERAL INCLUSIVE RULES:
- Ensure clear, readable formatting.
- Use active voice and an engaging, supportive tone.
- Provide a brief summary at the end.`

var adaptationRules = map[Category]string{
	CategoryADHD:         rulesADHD,
	CategoryAutism:       rulesAutism,
	CategoryDyslexia:     rulesDyslexia,
	CategoryVisual:       rulesVisual,
	CategoryHearing:      rulesHearing,
	CategoryIntellectual: rulesIntellectual,
	CategorySpeech:       rulesSpeech,
	CategoryMotor:        rulesMotor,
	CategoryGeneral:      rulesGeneral,
}

func learningStyleAddendum(learningStyle string) string {
	switch normalized(learningStyle) {
	case "visual":
		return "- Emphasize visual metaphors, color mentions, and spatial relationships."
	case "auditory":
		return "- Make the text conversational and rhythmic, suitable for listening."
	case "kinesthetic":
		return "- Relate concepts to physical sensations, movement, and real-world actions."
	case "reading_writing":
		return "- Focus on deep textual analysis, rich vocabulary, and structured note-taking cues."
	default:
		return ""
	}
}

// BuildAdaptationPrompt returns the (system, user) prompt pair for rewriting
// baseText for one student profile. The disability rule block is selected via
// ResolveCategory (so "stammering" shares the speech rules) and composed with
// a learning-style addendum; unrecognized styles contribute nothing.
func BuildAdaptationPrompt(baseText, disabilityType, learningStyle string) (string, string) {
	rules := adaptationRules[ResolveCategory(disabilityType)]
	combined := fmt.Sprintf("%s\n\nADDITIONAL LEARNING STYLE RULES (%s):\n%s",
		rules, learningStyle, learningStyleAddendum(learningStyle))
	user := fmt.Sprintf(adaptPassageUserTemplate, disabilityType, learningStyle, baseText, combined)
	return adaptPassageSystemPrompt, user
}
