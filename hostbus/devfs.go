package hostbus

import (
	"golang.org/x/exp/io/i2c"
	"golang.org/x/exp/io/i2c/driver"
	errgo "gopkg.in/errgo.v1"
)

// DefaultDevfs is the bus device used by OpenDevfs when none is given; on a Raspberry Pi it is the header bus.
const DefaultDevfs = "/dev/i2c-1"

// devfsBus opens one x/exp device per slave address on first use, since devfs binds the address at open time.
type devfsBus struct {
	opener driver.Opener
	name   string
	devs   map[uint16]*i2c.Device
}

// OpenDevfs returns a bus on the given /dev/i2c-N device. Nothing is opened until the first transfer.
func OpenDevfs(dev string) (Bus, error) {
	if dev == "" {
		dev = DefaultDevfs
	}
	return NewDevfs(&i2c.Devfs{Dev: dev}, dev), nil
}

// NewDevfs returns a bus opening its devices through o. The name is only used in messages.
func NewDevfs(o driver.Opener, name string) Bus {
	return &devfsBus{
		opener: o,
		name:   name,
		devs:   make(map[uint16]*i2c.Device),
	}
}

func (b *devfsBus) device(addr uint16) (*i2c.Device, error) {
	if d, ok := b.devs[addr]; ok {
		return d, nil
	}
	d, err := i2c.Open(b.opener, int(addr))
	if err != nil {
		return nil, errgo.Notef(err, "cannot open %#02x on %s", addr, b.name)
	}
	logger.Debugf("opened %#02x on %s", addr, b.name)
	b.devs[addr] = d
	return d, nil
}

func (b *devfsBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	d, err := b.device(uint16(addr))
	if err != nil {
		return err
	}
	logger.Tracef("%s: read %#02x reg %#02x len %d", b.name, addr, r, len(buf))
	if err := d.ReadReg(r, buf); err != nil {
		return errgo.Notef(err, "%s: cannot read register %#02x of %#02x", b.name, r, addr)
	}
	return nil
}

func (b *devfsBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	d, err := b.device(uint16(addr))
	if err != nil {
		return err
	}
	logger.Tracef("%s: write %#02x reg %#02x % x", b.name, addr, r, buf)
	if err := d.WriteReg(r, buf); err != nil {
		return errgo.Notef(err, "%s: cannot write register %#02x of %#02x", b.name, r, addr)
	}
	return nil
}

// Tx only supports what devfs can express: a plain write, a plain read, or a register read.
func (b *devfsBus) Tx(addr uint16, w, r []byte) error {
	d, err := b.device(addr)
	if err != nil {
		return err
	}
	switch {
	case len(w) == 1 && len(r) > 0:
		err = d.ReadReg(w[0], r)
	case len(r) == 0:
		err = d.Write(w)
	case len(w) == 0:
		err = d.Read(r)
	default:
		return errgo.Newf("%s: combined %d byte write and read not supported", b.name, len(w))
	}
	if err != nil {
		return errgo.Notef(err, "%s: transfer to %#02x failed", b.name, addr)
	}
	return nil
}

func (b *devfsBus) Close() error {
	var first error
	for addr, d := range b.devs {
		if err := d.Close(); err != nil && first == nil {
			first = errgo.Notef(err, "cannot close %#02x on %s", addr, b.name)
		}
		delete(b.devs, addr)
	}
	return first
}
