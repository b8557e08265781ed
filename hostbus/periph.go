package hostbus

import (
	"io"

	errgo "gopkg.in/errgo.v1"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type periphBus struct {
	bus i2c.Bus
}

// OpenPeriph initializes the periph host drivers and opens the named I2C bus. An empty name selects the first bus
// found.
func OpenPeriph(name string) (Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, errgo.Notef(err, "cannot initialize periph host")
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, errgo.Notef(err, "cannot open I2C bus %q", name)
	}
	logger.Debugf("opened periph I2C bus %s", b)
	return NewPeriph(b), nil
}

// NewPeriph wraps an already open periph bus. Closing the returned Bus closes b if it is an io.Closer.
func NewPeriph(b i2c.Bus) Bus {
	return &periphBus{bus: b}
}

func (b *periphBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *periphBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	w := make([]byte, len(buf)+1)
	w[0] = r
	copy(w[1:], buf)
	return b.Tx(uint16(addr), w, nil)
}

func (b *periphBus) Tx(addr uint16, w, r []byte) error {
	logger.Tracef("%s: tx %#02x w=% x r=%d", b.bus, addr, w, len(r))
	if err := b.bus.Tx(addr, w, r); err != nil {
		return errgo.Notef(err, "%s: transfer to %#02x failed", b.bus, addr)
	}
	return nil
}

func (b *periphBus) Close() error {
	c, ok := b.bus.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return errgo.Notef(err, "cannot close %s", b.bus)
	}
	return nil
}
