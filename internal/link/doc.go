// Package link provides the byte channel between the Control and HMI nodes.
//
// A Link moves single bytes in both directions with blocking send and
// receive and no framing or error detection. Stream adapts any
// io.ReadWriteCloser (a serial port or a TCP connection), Pair joins two
// in-process endpoints, and Open builds the endpoint described by the
// configuration.
package link
