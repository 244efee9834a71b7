package link

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// readTimeoutSetter is implemented by serial ports.
type readTimeoutSetter interface {
	SetReadTimeout(t time.Duration) error
}

// readDeadlineSetter is implemented by network connections.
type readDeadlineSetter interface {
	SetReadDeadline(t time.Time) error
}

// Stream is a Link over a byte stream.
type Stream struct {
	// rw is the underlying port or connection.
	rw io.ReadWriteCloser
	// receiveTimeout bounds ReceiveByte when positive.
	receiveTimeout time.Duration

	// readMu serialises receivers; writeMu serialises senders.
	readMu  sync.Mutex
	writeMu sync.Mutex
}

// Option configures a Stream.
type Option func(*Stream)

// WithReceiveTimeout bounds every ReceiveByte call.
// Zero keeps the default behaviour of waiting forever.
func WithReceiveTimeout(timeout time.Duration) Option {
	return func(s *Stream) {
		if timeout > 0 {
			s.receiveTimeout = timeout
		}
	}
}

// NewStream wraps rw as a Link.
func NewStream(rw io.ReadWriteCloser, opts ...Option) *Stream {
	s := &Stream{rw: rw}

	for _, opt := range opts {
		opt(s)
	}

	if s.receiveTimeout > 0 {
		if port, ok := rw.(readTimeoutSetter); ok {
			//nolint:errcheck // Ports that reject the timeout keep blocking reads.
			_ = port.SetReadTimeout(s.receiveTimeout)
		}
	}

	return s
}

// SendByte writes a single byte.
func (s *Stream) SendByte(b byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.rw.Write([]byte{b}); err != nil {
		return s.wrap("send byte", err)
	}

	return nil
}

// ReceiveByte reads a single byte.
func (s *Stream) ReceiveByte() (byte, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	if conn, ok := s.rw.(readDeadlineSetter); ok && s.receiveTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.receiveTimeout)); err != nil {
			return 0, s.wrap("set read deadline", err)
		}
	}

	var buf [1]byte

	for {
		n, err := s.rw.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}

		if err != nil {
			return 0, s.wrap("receive byte", err)
		}

		// Serial ports report an expired read timeout as a zero-length read.
		if s.receiveTimeout > 0 {
			return 0, ErrReceiveTimeout
		}
	}
}

// Close closes the underlying stream.
func (s *Stream) Close() error {
	return s.rw.Close()
}

// wrap maps transport errors onto the link sentinels.
func (s *Stream) wrap(op string, err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed), errors.Is(err, os.ErrClosed):
		return fmt.Errorf("%s: %w", op, ErrClosed)
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrReceiveTimeout
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
