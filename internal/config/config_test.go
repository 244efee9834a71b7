package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, format validations and defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing link.
	cfg := new(Config)
	require.ErrorIs(t, Validate(cfg), errLinkRequired)

	// Both device and address.
	cfg = &Config{Link: Link{Device: "/dev/ttyS0", Address: "127.0.0.1:7070"}}
	require.ErrorIs(t, Validate(cfg), errLinkAmbiguous)

	// Bad address.
	cfg = &Config{Link: Link{Address: "bad:address"}}
	require.Error(t, Validate(cfg))

	// Unknown backend.
	cfg = &Config{Link: Link{Device: "/dev/ttyS0"}, Control: Control{Hardware: "relay-board"}}
	require.ErrorIs(t, Validate(cfg), errUnknownHardware)

	// GPIO without pins.
	cfg = &Config{Link: Link{Device: "/dev/ttyS0"}, Control: Control{Hardware: HardwareGPIO}}
	require.ErrorIs(t, Validate(cfg), errPinsRequired)

	// Out of range duty.
	cfg = &Config{Link: Link{Device: "/dev/ttyS0"}, Control: Control{MotorSpeed: 150}}
	require.ErrorIs(t, Validate(cfg), errMotorSpeed)

	// Okay, defaults filled in.
	cfg = &Config{Link: Link{Device: "/dev/ttyS0"}}
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultBaudRate, cfg.Link.BaudRate)
	require.Equal(t, uint32(DefaultOpenTicks), cfg.Control.OpenTicks)
	require.Equal(t, uint32(DefaultAlarmTicks), cfg.Control.AlarmTicks)
	require.Equal(t, DefaultMaxAttempts, cfg.Control.MaxAttempts)
	require.Equal(t, HardwareSim, cfg.Control.Hardware)
	require.Equal(t, DefaultStorageFilename, cfg.Control.StorageFile)
	require.Equal(t, DefaultSendGap, cfg.HMI.SendGap)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Zero(t, cfg.Link.ReceiveTimeout)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Link: Link{
			Address:        "127.0.0.1:7070",
			ReceiveTimeout: 2 * time.Second,
		},
		Control: Control{
			TickPeriod:         500 * time.Millisecond,
			MaintenanceAddress: "127.0.0.1:50061",
			Hardware:           HardwareGPIO,
			Pins: Pins{
				Forward:    "GPIO17",
				Reverse:    "GPIO27",
				Enable:     "GPIO12",
				Occupancy:  "GPIO22",
				Alarm:      "GPIO23",
				Diagnostic: "GPIO24",
			},
		},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Link, loaded.Link)
	require.Equal(t, cfg.Control, loaded.Control)
	require.Equal(t, 500*time.Millisecond, loaded.Control.TickPeriod)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestSave_Nil rejects a missing configuration.
func TestSave_Nil(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil), errConfigIsNotSet)
}
