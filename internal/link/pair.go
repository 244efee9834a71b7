package link

import (
	"sync"
)

// pairBuffer is the per-direction capacity of an in-memory pair.
// A UART has a small hardware FIFO, so a sender rarely blocks.
const pairBuffer = 16

// endpoint is one side of an in-memory pair.
type endpoint struct {
	// tx carries bytes towards the peer; rx carries bytes from it.
	tx chan<- byte
	rx <-chan byte

	// done is shared by both endpoints and closed once.
	done      chan struct{}
	closeOnce *sync.Once
}

// Pair returns two connected in-memory links.
// Closing either side closes both.
func Pair() (Link, Link) {
	var (
		aToB = make(chan byte, pairBuffer)
		bToA = make(chan byte, pairBuffer)
		done = make(chan struct{})
		once = new(sync.Once)
	)

	a := &endpoint{tx: aToB, rx: bToA, done: done, closeOnce: once}
	b := &endpoint{tx: bToA, rx: aToB, done: done, closeOnce: once}

	return a, b
}

// SendByte queues b for the peer.
func (e *endpoint) SendByte(b byte) error {
	select {
	case <-e.done:
		return ErrClosed
	default:
	}

	select {
	case e.tx <- b:
		return nil
	case <-e.done:
		return ErrClosed
	}
}

// ReceiveByte waits for the next byte from the peer.
func (e *endpoint) ReceiveByte() (byte, error) {
	select {
	case b := <-e.rx:
		return b, nil
	case <-e.done:
		return 0, ErrClosed
	}
}

// Close tears down both endpoints.
func (e *endpoint) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
	})

	return nil
}
