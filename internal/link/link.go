package link

import "errors"

// Link is a duplex, unframed byte channel.
type Link interface {
	// SendByte blocks until b is handed to the channel.
	SendByte(b byte) error
	// ReceiveByte blocks until a byte arrives.
	ReceiveByte() (byte, error)
	// Close releases the channel and unblocks pending calls.
	Close() error
}

var (
	// ErrClosed is returned by operations on a closed link.
	ErrClosed = errors.New("link closed")
	// ErrReceiveTimeout is returned when a bounded receive expires.
	ErrReceiveTimeout = errors.New("receive timed out")
)
