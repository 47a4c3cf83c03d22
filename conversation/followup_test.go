package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFollowUp(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"Which song would you like to hear?", true},
		{"Could you rephrase that", true},
		{"Let me know if you need the full list.", true},
		{"WHAT city should I check", true},
		{"Please specify a duration.", true},
		{"Done?", true},
		{"Timer set for 5 minutes.", false},
		{"Playing Hotel California.", false},
		{"Done.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFollowUp(tt.reply))
		})
	}
}

func TestIsExitPhrase(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"cancel", true},
		{"  Stop  ", true},
		{"NEVERMIND", true},
		{"never mind", true},
		{"quit", true},
		{"exit", true},
		{"stop the music", false},
		{"cancel my 3 PM meeting", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExitPhrase(tt.text))
		})
	}
}
