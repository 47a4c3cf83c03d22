package conversation

import "strings"

// followUpMarkers are the interrogative fragments that mark a reply as a
// question back to the user. Matching is case-insensitive substring; a "?"
// anywhere in the reply counts as well. Deliberately simple so the decision
// is reproducible in tests.
var followUpMarkers = []string{
	"what",
	"when",
	"where",
	"which",
	"who",
	"how",
	"could you",
	"can you",
	"would you",
	"please specify",
	"please provide",
	"let me know",
}

// exitPhrases end the dialogue when spoken as the whole follow-up response.
// Comparison is on the trimmed, lowercased phrase; "stop the music" is a
// command, "stop" is an exit.
var exitPhrases = []string{
	"cancel",
	"nevermind",
	"never mind",
	"stop",
	"quit",
	"exit",
}

// IsFollowUp reports whether reply asks the user for more input.
func IsFollowUp(reply string) bool {
	if strings.Contains(reply, "?") {
		return true
	}

	lowered := strings.ToLower(reply)
	for _, marker := range followUpMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}

	return false
}

// IsExitPhrase reports whether text is one of the fixed exit phrases.
func IsExitPhrase(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range exitPhrases {
		if trimmed == phrase {
			return true
		}
	}

	return false
}
