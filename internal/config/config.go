package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the door binaries.
type Config struct {
	// Link describes the serial channel between the two nodes.
	Link Link `yaml:"link"`
	// Control holds the Control node settings.
	Control Control `yaml:"control"`
	// HMI holds the HMI node settings.
	HMI HMI `yaml:"hmi"`
	// Timeout is the duration for maintenance RPC calls.
	Timeout time.Duration `yaml:"timeout"`
}

// Link describes how the nodes reach each other.
// Exactly one of Device and Address must be set.
type Link struct {
	// Device is a serial device path such as /dev/ttyUSB0.
	Device string `yaml:"device"`
	// BaudRate is the serial line speed.
	BaudRate int `yaml:"baud_rate"`
	// Address is a TCP address: the Control node listens on it, the HMI node dials it.
	Address string `yaml:"address"`
	// ReceiveTimeout bounds every blocking receive. Zero waits forever.
	ReceiveTimeout time.Duration `yaml:"receive_timeout"`
}

// Control holds the Control node timing, storage and hardware wiring.
type Control struct {
	// TickPeriod is the period of the time base.
	TickPeriod time.Duration `yaml:"tick_period"`
	// OpenTicks is how long the actuator drives in either direction.
	OpenTicks uint32 `yaml:"open_ticks"`
	// AlarmTicks is the length of the lockout window.
	AlarmTicks uint32 `yaml:"alarm_ticks"`
	// MaxAttempts is the number of consecutive mismatches that triggers the alarm.
	MaxAttempts int `yaml:"max_attempts"`
	// MotorSpeed is the actuator duty in percent.
	MotorSpeed int `yaml:"motor_speed"`
	// SettleDelay is the pause between persistent writes.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// PollInterval paces the main loop while no handler blocks.
	PollInterval time.Duration `yaml:"poll_interval"`
	// StorageFile is the credential store image.
	StorageFile string `yaml:"storage_file"`
	// MaintenanceAddress enables the maintenance gRPC API when set.
	MaintenanceAddress string `yaml:"maintenance_addr"`
	// Hardware selects the backend: "sim" or "gpio".
	Hardware string `yaml:"hardware"`
	// Pins maps signals to GPIO names for the gpio backend.
	Pins Pins `yaml:"pins"`
}

// Pins names the GPIO lines used by the gpio backend.
type Pins struct {
	Forward    string `yaml:"forward"`
	Reverse    string `yaml:"reverse"`
	Enable     string `yaml:"enable"`
	Occupancy  string `yaml:"occupancy"`
	Alarm      string `yaml:"alarm"`
	Diagnostic string `yaml:"diagnostic"`
}

// HMI holds the HMI node settings.
type HMI struct {
	// SendGap is the pause between consecutive digit bytes.
	SendGap time.Duration `yaml:"send_gap"`
	// LogFile receives the HMI logs while the panel owns the terminal.
	LogFile string `yaml:"log_file"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "door-guard-settings.yaml"

	// DefaultStorageFilename is the default credential store image.
	DefaultStorageFilename = "door-guard-credential.bin"

	// DefaultHMILogFilename is the default HMI log file.
	DefaultHMILogFilename = "door-hmi.log"

	// DefaultTimeout is the default duration for maintenance calls.
	DefaultTimeout = 5 * time.Second

	// DefaultBaudRate matches both nodes' UART setup.
	DefaultBaudRate = 9600

	// DefaultTickPeriod is the period of the time base.
	DefaultTickPeriod = time.Second

	// DefaultOpenTicks is the actuator run time in ticks.
	DefaultOpenTicks = 15

	// DefaultAlarmTicks is the lockout window in ticks.
	DefaultAlarmTicks = 60

	// DefaultMaxAttempts is the mismatch escalation threshold.
	DefaultMaxAttempts = 3

	// DefaultMotorSpeed is full duty.
	DefaultMotorSpeed = 100

	// DefaultSettleDelay is the persistent write settle time.
	DefaultSettleDelay = 10 * time.Millisecond

	// DefaultPollInterval paces non-blocking phases.
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultSendGap is the pause between digit bytes.
	DefaultSendGap = 10 * time.Millisecond

	// HardwareSim selects the simulated bench.
	HardwareSim = "sim"

	// HardwareGPIO selects the periph.io GPIO backend.
	HardwareGPIO = "gpio"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errLinkRequired is returned when neither a device nor an address is configured.
	errLinkRequired = errors.New("link device or address must be provided")
	// errLinkAmbiguous is returned when both a device and an address are configured.
	errLinkAmbiguous = errors.New("link device and address are mutually exclusive")
	// errUnknownHardware is returned for an unsupported hardware backend.
	errUnknownHardware = errors.New("unknown hardware backend")
	// errPinsRequired is returned when the gpio backend misses a pin name.
	errPinsRequired = errors.New("gpio backend requires every pin name")
	// errMotorSpeed is returned for a duty outside 1-100.
	errMotorSpeed = errors.New("motor speed must be within 1-100")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := validateLink(&cfg.Link); err != nil {
		return err
	}

	if err := validateControl(&cfg.Control); err != nil {
		return err
	}

	if cfg.HMI.SendGap <= 0 {
		cfg.HMI.SendGap = DefaultSendGap
	}

	if cfg.HMI.LogFile == "" {
		cfg.HMI.LogFile = DefaultHMILogFilename
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}

func validateLink(l *Link) error {
	switch {
	case l.Device == "" && l.Address == "":
		return errLinkRequired
	case l.Device != "" && l.Address != "":
		return errLinkAmbiguous
	}

	if l.Address != "" {
		if _, err := net.ResolveTCPAddr("tcp", l.Address); err != nil {
			return fmt.Errorf("invalid link address: %w", err)
		}
	}

	if l.BaudRate <= 0 {
		l.BaudRate = DefaultBaudRate
	}

	if l.ReceiveTimeout < 0 {
		l.ReceiveTimeout = 0
	}

	return nil
}

//nolint:cyclop // A flat list of defaults reads better than helpers.
func validateControl(c *Control) error {
	if c.TickPeriod <= 0 {
		c.TickPeriod = DefaultTickPeriod
	}

	if c.OpenTicks == 0 {
		c.OpenTicks = DefaultOpenTicks
	}

	if c.AlarmTicks == 0 {
		c.AlarmTicks = DefaultAlarmTicks
	}

	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	if c.MotorSpeed == 0 {
		c.MotorSpeed = DefaultMotorSpeed
	}

	if c.MotorSpeed < 0 || c.MotorSpeed > 100 {
		return errMotorSpeed
	}

	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.StorageFile == "" {
		c.StorageFile = DefaultStorageFilename
	}

	if c.MaintenanceAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", c.MaintenanceAddress); err != nil {
			return fmt.Errorf("invalid maintenance address: %w", err)
		}
	}

	switch c.Hardware {
	case "":
		c.Hardware = HardwareSim
	case HardwareSim:
	case HardwareGPIO:
		p := c.Pins
		if p.Forward == "" || p.Reverse == "" || p.Enable == "" ||
			p.Occupancy == "" || p.Alarm == "" || p.Diagnostic == "" {
			return errPinsRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownHardware, c.Hardware)
	}

	return nil
}
