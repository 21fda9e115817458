package buslink

import (
	"bytes"
	"io"
	"sync"
)

// MockPort implements Porter for testing. Polls are queued with Poll and
// delivered one byte per Read; responses are captured in an internal
// buffer readable via Written.
type MockPort struct {
	mu      sync.Mutex
	polls   chan byte
	written bytes.Buffer
	closed  bool
}

// NewMockPort creates a mock port ready for polling.
func NewMockPort() *MockPort {
	return &MockPort{polls: make(chan byte, 16)}
}

// Poll simulates the controller requesting the current command.
func (p *MockPort) Poll() {
	p.polls <- 0
}

func (p *MockPort) Read(buf []byte) (int, error) {
	b, ok := <-p.polls
	if !ok {
		return 0, io.EOF
	}
	if len(buf) == 0 {
		return 0, nil
	}
	buf[0] = b
	return 1, nil
}

func (p *MockPort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	return p.written.Write(data)
}

// Close unblocks any pending Read and rejects further writes.
func (p *MockPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.polls)
	}
	return nil
}

// Written returns a copy of everything the responder has sent so far.
func (p *MockPort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}
