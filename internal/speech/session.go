package speech

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Session owns one in-flight synthesis stream. One reader goroutine
// fills a bounded queue; the consumer drains Chunks until it closes.
// Cancel releases the upstream body deterministically, whether or not
// the consumer has drained the queue.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	body   io.ReadCloser
	chunks chan []byte

	mu  sync.Mutex
	err error
}

func newSession(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser) *Session {
	return &Session{
		ctx:    ctx,
		cancel: cancel,
		body:   body,
		chunks: make(chan []byte, sessionCapacity),
	}
}

// Chunks delivers audio in arrival order. The channel closes when the
// stream ends, fails, or the session is cancelled.
func (s *Session) Chunks() <-chan []byte {
	return s.chunks
}

// Err reports why the stream stopped. Valid once Chunks has closed;
// nil means the stream ended normally.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if err := s.ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Cancel aborts the stream. Safe to call more than once and after the
// stream has already ended.
func (s *Session) Cancel() {
	s.cancel()
}

func (s *Session) read() {
	defer close(s.chunks)
	defer s.body.Close()
	defer s.cancel()

	// Hold back the first chunks so a slow upstream does not starve
	// playback right after it starts.
	var pending [][]byte
	holding := true

	flush := func() bool {
		for len(pending) > 0 {
			select {
			case s.chunks <- pending[0]:
				pending = pending[1:]
			case <-s.ctx.Done():
				return false
			}
		}
		return true
	}

	for {
		buf := make([]byte, chunkSize)
		n, err := s.body.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if holding {
				pending = append(pending, chunk)
				if len(pending) >= minBufferedChunks {
					holding = false
					if !flush() {
						return
					}
				}
			} else {
				select {
				case s.chunks <- chunk:
				case <-s.ctx.Done():
					return
				}
			}
		}
		if err != nil {
			if holding {
				flush()
			}
			if !errors.Is(err, io.EOF) && s.ctx.Err() == nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
	}
}
