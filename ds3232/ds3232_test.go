package ds3232

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

var errNoDevice = errors.New("no device at address")

// fakeBus is a register file standing in for the chip.
type fakeBus struct {
	addr   uint8
	regs   [256]byte
	reads  int
	writes int
	err    error
}

func newFakeBus() *fakeBus {
	return &fakeBus{addr: Address}
}

func (b *fakeBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	if b.err != nil {
		return b.err
	}
	if addr != b.addr {
		return errNoDevice
	}
	b.reads++
	copy(buf, b.regs[r:])
	return nil
}

func (b *fakeBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	if b.err != nil {
		return b.err
	}
	if addr != b.addr {
		return errNoDevice
	}
	b.writes++
	copy(b.regs[r:], buf)
	return nil
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 {
		return errors.New("no register pointer")
	}
	if len(w) > 1 {
		return b.WriteRegister(uint8(addr), w[0], w[1:])
	}
	return b.ReadRegister(uint8(addr), w[0], r)
}

func TestBCDRoundTrip(t *testing.T) {
	c := qt.New(t)
	for i := 0; i < 100; i++ {
		c.Assert(bcdToDec(decToBcd(i)), qt.Equals, i)
	}
	c.Assert(decToBcd(59), qt.Equals, uint8(0x59))
	c.Assert(bcdToDec(0x42), qt.Equals, 42)
}

func TestHoursToDec(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		reg  uint8
		hour int
	}{
		{0x00, 0},
		{0x23, 23},
		{0x40 | 0x12, 0},         // 12 AM
		{0x40 | 0x01, 1},         // 1 AM
		{0x40 | 0x20 | 0x12, 12}, // 12 PM
		{0x40 | 0x20 | 0x11, 23}, // 11 PM
	}
	for _, test := range tests {
		c.Check(hoursToDec(test.reg), qt.Equals, test.hour, qt.Commentf("reg %#02x", test.reg))
	}
}

func TestSetRegisters(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	err := d.Set(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC))
	c.Assert(err, qt.IsNil)
	// Monday is stored as 2
	c.Assert(bus.regs[:timeFields], qt.DeepEquals, []byte{0x05, 0x04, 0x15, 0x02, 0x02, 0x01, 0x06})
	c.Assert(bus.writes, qt.Equals, 1)
}

func TestSetNowRoundTrip(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	for _, year := range []int{2000, 2001, 2024, 2099, 2100, 2150, 2199} {
		for _, month := range []time.Month{time.January, time.February, time.July, time.December} {
			want := time.Date(year, month, 28, 23, 59, 58, 0, time.UTC)
			c.Assert(d.Set(want), qt.IsNil)
			got, err := d.Now()
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, want)
		}
	}
}

func TestSetTruncatesAndConvertsToUTC(t *testing.T) {
	c := qt.New(t)
	d := New(newFakeBus())

	zone := time.FixedZone("UTC+2", 2*60*60)
	c.Assert(d.Set(time.Date(2024, 3, 1, 1, 30, 0, 999_000_000, zone)), qt.IsNil)
	got, err := d.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC))
}

func TestCenturyBit(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	c.Assert(d.Set(time.Date(2150, 6, 1, 0, 0, 0, 0, time.UTC)), qt.IsNil)
	c.Assert(bus.regs[Month], qt.Equals, uint8(0x86))
	c.Assert(bus.regs[Year], qt.Equals, uint8(0x50))
}

func TestSetYearOutOfRange(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	c.Assert(d.Set(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)), qt.Equals, ErrYearOutOfRange)
	c.Assert(d.Set(time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)), qt.Equals, ErrYearOutOfRange)
	c.Assert(bus.writes, qt.Equals, 0)
}

func TestSetTimeFieldRange(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	valid := Time{Second: 59, Minute: 59, Hour: 23, Weekday: 7, Day: 31, Month: 12, Year: 2099}
	c.Assert(d.SetTime(valid), qt.IsNil)
	c.Assert(bus.writes, qt.Equals, 1)

	tests := []func(*Time){
		func(t *Time) { t.Second = 60 },
		func(t *Time) { t.Minute = -1 },
		func(t *Time) { t.Hour = 24 },
		func(t *Time) { t.Weekday = 0 },
		func(t *Time) { t.Weekday = 8 },
		func(t *Time) { t.Day = 0 },
		func(t *Time) { t.Day = 32 },
		func(t *Time) { t.Month = 13 },
	}
	for i, mutate := range tests {
		tm := valid
		mutate(&tm)
		c.Assert(d.SetTime(tm), qt.Equals, ErrFieldRange, qt.Commentf("case %d: %+v", i, tm))
	}
	c.Assert(bus.writes, qt.Equals, 1)
}

func TestReadTime12HourMode(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	copy(bus.regs[:], []byte{0x30, 0x45, 0x40 | 0x20 | 0x09, 0x05, 0x17, 0x08, 0x23})
	d := New(bus)

	got, err := d.ReadTime()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, Time{Second: 30, Minute: 45, Hour: 21, Weekday: 5, Day: 17, Month: 8, Year: 2023})
}

func TestBusErrorPropagates(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	bus.err = errors.New("nack")
	d := New(bus)

	_, err := d.Now()
	c.Assert(err, qt.Equals, bus.err)
	c.Assert(d.Set(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), qt.Equals, bus.err)
	_, _, err = d.ReadAlarm(Alarm1)
	c.Assert(err, qt.Equals, bus.err)
	_, err = d.Alarm(Alarm2, true)
	c.Assert(err, qt.Equals, bus.err)
	_, err = d.ReadTemperature()
	c.Assert(err, qt.Equals, bus.err)
}

func TestConfigureAddress(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	bus.addr = 0x57
	d := New(bus)

	_, err := d.Now()
	c.Assert(err, qt.Equals, errNoDevice)

	d.Configure(Config{Address: 0x57, Model: DS3232})
	_, err = d.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(d.Model, qt.Equals, DS3232)

	d.Configure(Config{})
	c.Assert(d.Address, qt.Equals, uint8(Address))
}

func TestRawRegisters(t *testing.T) {
	c := qt.New(t)
	bus := newFakeBus()
	d := New(bus)

	c.Assert(d.WriteRegisters(Alarm1Seconds, []byte{1, 2, 3}), qt.IsNil)
	buf := make([]byte, 3)
	c.Assert(d.ReadRegisters(Alarm1Seconds, buf), qt.IsNil)
	c.Assert(buf, qt.DeepEquals, []byte{1, 2, 3})
}
