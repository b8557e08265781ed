// Package hostbus provides I2C buses for running the drivers in this module on a Linux host instead of a
// microcontroller. Every bus implements drivers.I2C, so a *ds3232.Device can be built on top of it unchanged.
//
// Two backends are available: periph, which uses the periph.io host drivers and accepts any bus name known to
// i2creg, and devfs, which talks to /dev/i2c-N directly through golang.org/x/exp/io/i2c.
package hostbus

import (
	"io"

	"github.com/juju/loggo"
	errgo "gopkg.in/errgo.v1"
	"tinygo.org/x/drivers"
)

var logger = loggo.GetLogger("ds3232.hostbus")

// Bus is an I2C bus owned by the host. It must be closed once no longer used.
type Bus interface {
	drivers.I2C
	io.Closer
}

// Backend names accepted in Config.Driver.
const (
	DriverPeriph = "periph"
	DriverDevfs  = "devfs"
)

// Open opens the bus described by cfg.
func Open(cfg Config) (Bus, error) {
	switch cfg.Driver {
	case "", DriverPeriph:
		return OpenPeriph(cfg.Bus)
	case DriverDevfs:
		return OpenDevfs(cfg.Bus)
	}
	return nil, errgo.Newf("unknown I2C driver %q", cfg.Driver)
}
