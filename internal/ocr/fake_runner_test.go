package ocr

import (
	"context"
	"sync"
)

type fakeRunner struct {
	mu     sync.Mutex
	out    string
	errOut string
	err    error
	calls  [][]string
	stdins [][]byte
}

func (f *fakeRunner) Run(ctx context.Context, name string, stdin []byte, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.stdins = append(f.stdins, stdin)
	if f.err != nil {
		return nil, []byte(f.errOut), f.err
	}
	return []byte(f.out), nil, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
