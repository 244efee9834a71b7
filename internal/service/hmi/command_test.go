package hmi

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/link"
)

var errPanelFailed = errors.New("panel failed")

// TestLoadSettings_Overrides checks that flags replace config values.
func TestLoadSettings_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, &config.Config{Link: config.Link{Address: "127.0.0.1:7070"}}))

	settings, err := loadSettings(&Options{ConfigPath: path, Device: "/dev/ttyUSB1", LogFile: "panel.log"})
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB1", settings.Link.Device)
	require.Empty(t, settings.Link.Address)
	require.Equal(t, "panel.log", settings.HMI.LogFile)
	require.Equal(t, config.DefaultSendGap, settings.HMI.SendGap)
}

// TestRunTogether_QuitStopsMachine checks that quitting the panel unblocks the machine.
func TestRunTogether_QuitStopsMachine(t *testing.T) {
	t.Parallel()

	hmiSide, _ := link.Pair()

	machine := func(context.Context) error {
		// Blocks like a status wait until the link is closed.
		_, err := hmiSide.ReceiveByte()
		if errors.Is(err, link.ErrClosed) {
			return nil
		}

		return err
	}

	ui := func(context.Context) error {
		time.Sleep(10 * time.Millisecond)

		return nil
	}

	require.NoError(t, runTogether(context.Background(), hmiSide, machine, ui))
}

// TestRunTogether_ReportsErrors checks that a failing side stops the other and is reported.
func TestRunTogether_ReportsErrors(t *testing.T) {
	t.Parallel()

	hmiSide, _ := link.Pair()

	machine := func(ctx context.Context) error {
		<-ctx.Done()

		return nil
	}

	ui := func(context.Context) error {
		return errPanelFailed
	}

	require.ErrorIs(t, runTogether(context.Background(), hmiSide, machine, ui), errPanelFailed)
}
