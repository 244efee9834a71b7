package gpio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/hardware"
)

// pwmFrequency is the enable-line carrier frequency.
const pwmFrequency = physic.KiloHertz

// errUnknownPin is returned when a configured name is not a registered pin.
var errUnknownPin = errors.New("unknown gpio pin")

// Board holds the opened pins.
type Board struct {
	forward    gpio.PinIO
	reverse    gpio.PinIO
	enable     gpio.PinIO
	occupancy  gpio.PinIO
	alarm      gpio.PinIO
	diagnostic gpio.PinIO
}

// Open initialises the host drivers and configures every pin.
// All outputs start low.
func Open(pins *config.Pins) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	var (
		b   Board
		err error
	)

	lookups := []struct {
		name string
		dst  *gpio.PinIO
	}{
		{pins.Forward, &b.forward},
		{pins.Reverse, &b.reverse},
		{pins.Enable, &b.enable},
		{pins.Occupancy, &b.occupancy},
		{pins.Alarm, &b.alarm},
		{pins.Diagnostic, &b.diagnostic},
	}

	for _, l := range lookups {
		if *l.dst, err = lookup(l.name); err != nil {
			return nil, err
		}
	}

	for _, p := range []gpio.PinIO{b.forward, b.reverse, b.enable, b.alarm, b.diagnostic} {
		if err = p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("configure %s as output: %w", p.Name(), err)
		}
	}

	if err = b.occupancy.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s as input: %w", b.occupancy.Name(), err)
	}

	return &b, nil
}

func lookup(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", errUnknownPin, name)
	}

	return p, nil
}

// Devices exposes the board through the signal contracts.
func (b *Board) Devices() hardware.Devices {
	return hardware.Devices{
		Actuator:   b,
		Occupancy:  b,
		Alarm:      alarmLine{b.alarm},
		Diagnostic: b,
	}
}

// Forward drives the H-bridge forward.
func (b *Board) Forward(speed int) error {
	return b.drive(gpio.High, gpio.Low, speed)
}

// Reverse drives the H-bridge in reverse.
func (b *Board) Reverse(speed int) error {
	return b.drive(gpio.Low, gpio.High, speed)
}

// Stop releases both direction lines and the enable line.
func (b *Board) Stop() error {
	return b.drive(gpio.Low, gpio.Low, 0)
}

func (b *Board) drive(forward, reverse gpio.Level, speed int) error {
	if err := b.forward.Out(forward); err != nil {
		return fmt.Errorf("set forward line: %w", err)
	}

	if err := b.reverse.Out(reverse); err != nil {
		return fmt.Errorf("set reverse line: %w", err)
	}

	return b.setSpeed(speed)
}

// setSpeed applies the duty on the enable line. Pins without PWM support
// fall back to full-on or full-off.
func (b *Board) setSpeed(speed int) error {
	speed = min(max(speed, 0), 100)

	duty := gpio.Duty(int64(gpio.DutyMax) * int64(speed) / 100)
	if err := b.enable.PWM(duty, pwmFrequency); err == nil {
		return nil
	}

	level := gpio.Low
	if speed > 0 {
		level = gpio.High
	}

	if err := b.enable.Out(level); err != nil {
		return fmt.Errorf("set enable line: %w", err)
	}

	return nil
}

// Occupancy reads the sensor line.
func (b *Board) Occupancy() hardware.Reading {
	if b.occupancy.Read() == gpio.Low {
		return hardware.ReadingClear
	}

	return hardware.ReadingPresent
}

// Raise sets the diagnostic line.
func (b *Board) Raise() error {
	if err := b.diagnostic.Out(gpio.High); err != nil {
		return fmt.Errorf("raise diagnostic line: %w", err)
	}

	return nil
}

// alarmLine adapts a pin to hardware.AlarmSignal.
type alarmLine struct {
	pin gpio.PinIO
}

// On drives the alarm line high.
func (a alarmLine) On() error {
	return a.pin.Out(gpio.High)
}

// Off drives the alarm line low.
func (a alarmLine) Off() error {
	return a.pin.Out(gpio.Low)
}
