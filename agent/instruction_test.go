package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStaticInstruction(t *testing.T) {
	instr := NewInstructionFromText("You control music playback.")

	assert.True(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "You control music playback.", text)
}

func TestProviderInstruction(t *testing.T) {
	instr := NewInstructionFromFunc(func(ctx context.Context) (string, error) {
		return fmt.Sprintf("Today is %s.", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")), nil
	})

	assert.False(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Today is 2025-03-01.", text)
}

func TestZeroValueInstructionIsEmptyStatic(t *testing.T) {
	var instr Instruction

	assert.True(t, instr.IsStatic())

	text, err := instr.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, text)
}
