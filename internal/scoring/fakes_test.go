package scoring

import (
	"context"
	"errors"
	"sync"

	"resume-tailor/internal/ai"
)

type fakeCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     map[string]int
	panicOn   string
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{
		responses: map[string]string{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, systemPrompt, userContent string) (ai.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[systemPrompt]++
	if f.panicOn != "" && f.panicOn == systemPrompt {
		panic("boom")
	}
	if err := f.errs[systemPrompt]; err != nil {
		return ai.Completion{}, err
	}
	if r, ok := f.responses[systemPrompt+"|"+userContent]; ok {
		return ai.Completion{Text: r, TokenUsage: 10}, nil
	}
	if r, ok := f.responses[systemPrompt]; ok {
		return ai.Completion{Text: r, TokenUsage: 10}, nil
	}
	return ai.Completion{}, errors.New("no response configured")
}

func (f *fakeCompleter) Model() string { return "fake-model" }

func (f *fakeCompleter) callCount(systemPrompt string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[systemPrompt]
}

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return v, nil
}
