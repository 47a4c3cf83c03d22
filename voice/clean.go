package voice

import (
	"regexp"
	"strings"
)

// Replies come back from the planner as markdown-ish text. Spoken output
// needs none of that, so CleanForSpeech strips formatting down to plain
// sentences before the text reaches a Speaker.
var (
	boldPattern      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^*]+)\*`)
	underlinePattern = regexp.MustCompile(`__([^_]+)__`)
	emphasisPattern  = regexp.MustCompile(`_([^_]+)_`)
	codePattern      = regexp.MustCompile("`([^`]*)`")
	headerPattern    = regexp.MustCompile(`(?m)^#+\s+`)
	bulletPattern    = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	linkPattern      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	urlPattern       = regexp.MustCompile(`https?://[^\s]+`)
	agentPrefix      = regexp.MustCompile(`^\([^)]+\):\s*`)
	whitespace       = regexp.MustCompile(`\s+`)

	emojiPattern = regexp.MustCompile(`[` +
		`\x{1F300}-\x{1F5FF}` +
		`\x{1F600}-\x{1F64F}` +
		`\x{1F680}-\x{1F6FF}` +
		`\x{1F900}-\x{1F9FF}` +
		`\x{1F1E6}-\x{1F1FF}` +
		`\x{2300}-\x{23FF}` +
		`\x{2600}-\x{27BF}` +
		`\x{2B00}-\x{2BFF}` +
		`\x{FE0F}` +
		`\x{200D}` +
		`]+`)
)

// CleanForSpeech normalizes a reply for text-to-speech: markdown emphasis,
// code markers, headers, bullets and links are unwrapped, raw URLs and emoji
// are dropped, and whitespace is collapsed. The result may be empty when the
// input carried no speakable content.
func CleanForSpeech(text string) string {
	out := linkPattern.ReplaceAllString(text, "$1")
	out = boldPattern.ReplaceAllString(out, "$1")
	out = underlinePattern.ReplaceAllString(out, "$1")
	out = italicPattern.ReplaceAllString(out, "$1")
	out = emphasisPattern.ReplaceAllString(out, "$1")
	out = codePattern.ReplaceAllString(out, "$1")
	out = headerPattern.ReplaceAllString(out, "")
	out = bulletPattern.ReplaceAllString(out, "")
	out = urlPattern.ReplaceAllString(out, "")
	out = emojiPattern.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	out = agentPrefix.ReplaceAllString(out, "")

	return strings.TrimSpace(out)
}
