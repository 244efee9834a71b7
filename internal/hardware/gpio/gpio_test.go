package gpio

import (
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/oshokin/door-guard/internal/hardware"
)

// newTestBoard wires a board to fake pins.
func newTestBoard() (*Board, map[string]*gpiotest.Pin) {
	pins := map[string]*gpiotest.Pin{
		"forward":    {N: "GPIO17"},
		"reverse":    {N: "GPIO27"},
		"enable":     {N: "GPIO12"},
		"occupancy":  {N: "GPIO22", L: gpio.High},
		"alarm":      {N: "GPIO23"},
		"diagnostic": {N: "GPIO24"},
	}

	return &Board{
		forward:    pins["forward"],
		reverse:    pins["reverse"],
		enable:     pins["enable"],
		occupancy:  pins["occupancy"],
		alarm:      pins["alarm"],
		diagnostic: pins["diagnostic"],
	}, pins
}

// TestBoard_Actuator verifies the H-bridge line pattern and PWM duty.
func TestBoard_Actuator(t *testing.T) {
	t.Parallel()

	b, pins := newTestBoard()

	require.NoError(t, b.Forward(100))
	require.Equal(t, gpio.High, pins["forward"].L)
	require.Equal(t, gpio.Low, pins["reverse"].L)
	require.Equal(t, gpio.DutyMax, pins["enable"].D)

	require.NoError(t, b.Reverse(50))
	require.Equal(t, gpio.Low, pins["forward"].L)
	require.Equal(t, gpio.High, pins["reverse"].L)
	require.Equal(t, gpio.DutyMax/2, pins["enable"].D)

	require.NoError(t, b.Stop())
	require.Equal(t, gpio.Low, pins["forward"].L)
	require.Equal(t, gpio.Low, pins["reverse"].L)
	require.Equal(t, gpio.Duty(0), pins["enable"].D)
}

// TestBoard_Signals covers the sensor polarity and the output lines.
func TestBoard_Signals(t *testing.T) {
	t.Parallel()

	b, pins := newTestBoard()
	require.Equal(t, hardware.ReadingPresent, b.Occupancy())

	pins["occupancy"].L = gpio.Low
	require.Equal(t, hardware.ReadingClear, b.Occupancy())

	d := b.Devices()
	require.NoError(t, d.Alarm.On())
	require.Equal(t, gpio.High, pins["alarm"].L)
	require.NoError(t, d.Alarm.Off())
	require.Equal(t, gpio.Low, pins["alarm"].L)

	require.NoError(t, d.Diagnostic.Raise())
	require.Equal(t, gpio.High, pins["diagnostic"].L)
}
