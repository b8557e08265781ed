package hostbus

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/juju/loggo"
	errgo "gopkg.in/errgo.v1"

	"github.com/ajanata/ds3232rtc/ds3232"
)

// Environment variables read by LoadConfig.
const (
	EnvDriver  = "DS3232_I2C_DRIVER"
	EnvBus     = "DS3232_I2C_BUS"
	EnvAddress = "DS3232_I2C_ADDR"
	EnvModel   = "DS3232_MODEL"
	EnvLog     = "DS3232_LOG"
)

// Config describes where to find the RTC.
type Config struct {
	// Driver is DriverPeriph (the default) or DriverDevfs.
	Driver string
	// Bus is a periph bus name or a devfs device path. Empty picks a default.
	Bus string
	// Address of the RTC, 0 means ds3232.Address.
	Address uint8
	Model   ds3232.Model
	// LogLevel is a loggo logger configuration such as "<root>=INFO;ds3232.hostbus=TRACE".
	LogLevel string
}

// LoadConfig loads the given .env files, or ./.env if none are given and it exists, and then builds a Config from the
// environment. Variables already set in the environment take precedence over the files.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errgo.Notef(err, "cannot load environment")
		}
	}
	cfg := Config{
		Driver:   strings.ToLower(os.Getenv(EnvDriver)),
		Bus:      os.Getenv(EnvBus),
		LogLevel: os.Getenv(EnvLog),
	}
	if s := os.Getenv(EnvAddress); s != "" {
		addr, err := strconv.ParseUint(s, 0, 7)
		if err != nil {
			return Config{}, errgo.Notef(err, "invalid %s", EnvAddress)
		}
		cfg.Address = uint8(addr)
	}
	switch model := strings.ToLower(os.Getenv(EnvModel)); model {
	case "", "ds3231":
		cfg.Model = ds3232.DS3231
	case "ds3232":
		cfg.Model = ds3232.DS3232
	default:
		return Config{}, errgo.Newf("invalid %s %q", EnvModel, model)
	}
	switch cfg.Driver {
	case "", DriverPeriph, DriverDevfs:
	default:
		return Config{}, errgo.Newf("invalid %s %q", EnvDriver, cfg.Driver)
	}
	return cfg, nil
}

// Device returns the driver configuration for the RTC.
func (c Config) Device() ds3232.Config {
	return ds3232.Config{
		Address: c.Address,
		Model:   c.Model,
	}
}

// ConfigureLogging applies LogLevel to the loggo loggers. An empty level leaves them alone.
func (c Config) ConfigureLogging() error {
	if c.LogLevel == "" {
		return nil
	}
	if err := loggo.ConfigureLoggers(c.LogLevel); err != nil {
		return errgo.Notef(err, "invalid %s", EnvLog)
	}
	return nil
}

// OpenDevice opens the configured bus and returns a configured RTC on it. The caller must close the bus.
func OpenDevice(c Config) (*ds3232.Device, Bus, error) {
	bus, err := Open(c)
	if err != nil {
		return nil, nil, err
	}
	d := ds3232.New(bus)
	d.Configure(c.Device())
	driver := c.Driver
	if driver == "" {
		driver = DriverPeriph
	}
	logger.Infof("DS323x at %#02x via %s", d.Address, driver)
	return d, bus, nil
}
