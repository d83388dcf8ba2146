package testsupport

import (
	"context"
	"sync"
)

// ScriptedPrompter answers confirmations from a fixed list and records
// every question and pause.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []bool
	Questions []string
	Pauses    []string
}

// NewScriptedPrompter returns a prompter that answers with answers in order
// and "no" once they run out.
func NewScriptedPrompter(answers ...bool) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Confirm records the question and returns the next scripted answer, or the
// context error if ctx is already done.
func (p *ScriptedPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Pause records the message and returns immediately.
func (p *ScriptedPrompter) Pause(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Pauses = append(p.Pauses, message)
	return nil
}
