package link

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.bug.st/serial"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/logger"
)

// Role tells Open which end of a TCP link to play.
type Role uint8

const (
	// RoleControl accepts the single HMI connection.
	RoleControl Role = iota
	// RoleHMI dials the Control node.
	RoleHMI
)

// errNoEndpoint is returned when the configuration names no endpoint.
var errNoEndpoint = errors.New("no link endpoint configured")

// Open builds the link described by cfg.
// A serial device is opened 8N1 at the configured baud rate. A TCP address
// is listened on by the Control node, which accepts exactly one peer, and
// dialled by the HMI node.
func Open(ctx context.Context, cfg *config.Link, role Role) (Link, error) {
	opts := []Option{WithReceiveTimeout(cfg.ReceiveTimeout)}

	switch {
	case cfg.Device != "":
		mode := &serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}

		port, err := serial.Open(cfg.Device, mode)
		if err != nil {
			return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
		}

		logger.InfoKV(ctx, "Serial link open", "device", cfg.Device, "baud_rate", cfg.BaudRate)

		return NewStream(port, opts...), nil
	case cfg.Address != "" && role == RoleControl:
		conn, err := acceptOne(ctx, cfg.Address)
		if err != nil {
			return nil, err
		}

		return NewStream(conn, opts...), nil
	case cfg.Address != "":
		var dialer net.Dialer

		conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", cfg.Address, err)
		}

		logger.InfoKV(ctx, "TCP link connected", "address", cfg.Address)

		return NewStream(conn, opts...), nil
	default:
		return nil, errNoEndpoint
	}
}

// acceptOne listens on address and returns the first connection.
func acceptOne(ctx context.Context, address string) (net.Conn, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	defer func() {
		_ = lis.Close()
	}()

	logger.InfoKV(ctx, "Waiting for HMI node", "listen_address", lis.Addr().String())

	// Unblock Accept when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = lis.Close()
	})
	defer stop()

	conn, err := lis.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("accept HMI node: %w", err)
	}

	logger.InfoKV(ctx, "HMI node connected", "remote_address", conn.RemoteAddr().String())

	return conn, nil
}
