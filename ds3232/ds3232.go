// Package ds3232 implements a driver for the DS3231 and DS3232 Real-Time Clocks (RTC). It reads and sets the time,
// programs both alarms, controls the square-wave and 32kHz outputs, and reads the temperature sensor and aging offset.
// On the DS3232 it also gives access to the battery-backed SRAM.
//
// The chip is the only source of truth: the driver keeps no copy of any register, so every call is a fresh read or a
// read-modify-write on the bus. Read-modify-write sequences are not atomic, so a Device must not be shared between
// goroutines without external locking.
//
// Datasheets:
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS3231.pdf
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS3232.pdf
package ds3232

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	ErrInvalidAlarm     = errors.New("ds3232: invalid alarm number")
	ErrInvalidMatch     = errors.New("ds3232: invalid alarm match type")
	ErrInvalidFrequency = errors.New("ds3232: invalid square wave frequency")
	ErrInvalidRate      = errors.New("ds3232: invalid temperature conversion rate")
	ErrYearOutOfRange   = errors.New("ds3232: year out of range")
	ErrFieldRange       = errors.New("ds3232: time field out of range")
	ErrNotSupported     = errors.New("ds3232: not supported by this model")
	ErrSRAMRange        = errors.New("ds3232: SRAM access out of range")
	ErrBusy             = errors.New("ds3232: temperature conversion in progress")
)

// Model selects which chip is on the bus. The DS3231 lacks SRAM, the battery-backed 32kHz output and the adjustable
// temperature conversion rate.
type Model uint8

const (
	DS3231 Model = iota
	DS3232
)

type Device struct {
	bus     drivers.I2C
	Address uint8
	Model   Model
}

type Config struct {
	Address uint8
	Model   Model
}

// New creates a new driver on the specified preconfigured I2C bus. It does not touch the device.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
		Model:   DS3231,
	}
}

func (d *Device) Configure(c Config) {
	if c.Address == 0 {
		c.Address = Address
	}
	d.Address = c.Address
	d.Model = c.Model
}

// Time holds the seven time registers decoded to binary. Weekday is the chip's free-running day of week, 1-7; Set
// stores 1 for Sunday.
type Time struct {
	Second  int
	Minute  int
	Hour    int
	Weekday int
	Day     int
	Month   int
	Year    int // calendar year, 2000-2199
}

// ReadTime reads all seven time registers in one transfer.
func (d *Device) ReadTime() (Time, error) {
	buf := [timeFields]byte{}
	err := d.bus.ReadRegister(d.Address, Seconds, buf[:])
	if err != nil {
		return Time{}, err
	}
	return unpackTime(buf[:]), nil
}

// SetTime writes all seven time registers in one transfer, always in 24 hour mode. Fields outside their calendar range
// are rejected with ErrFieldRange.
func (d *Device) SetTime(t Time) error {
	buf := [timeFields]byte{}
	err := packTime(t, buf[:])
	if err != nil {
		return err
	}
	return d.bus.WriteRegister(d.Address, Seconds, buf[:])
}

// Now returns the current time in UTC, accurate to the second.
func (d *Device) Now() (time.Time, error) {
	t, err := d.ReadTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC), nil
}

// Set sets the clock to t, converted to UTC and truncated to the second. Years before 2000 or after 2199 are rejected.
func (d *Device) Set(t time.Time) error {
	t = t.UTC()
	return d.SetTime(Time{
		Second:  t.Second(),
		Minute:  t.Minute(),
		Hour:    t.Hour(),
		Weekday: int(t.Weekday()) + 1,
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
	})
}

func packTime(t Time, buf []byte) error {
	year := t.Year - 2000
	if year < 0 || year > 199 {
		return ErrYearOutOfRange
	}
	if !inRange(t.Second, 0, 59) || !inRange(t.Minute, 0, 59) || !inRange(t.Hour, 0, 23) ||
		!inRange(t.Weekday, 1, 7) || !inRange(t.Day, 1, 31) || !inRange(t.Month, 1, 12) {
		return ErrFieldRange
	}
	var century uint8
	if year >= 100 {
		year -= 100
		century = 1 << Century
	}
	buf[Seconds] = decToBcd(t.Second)
	buf[Minutes] = decToBcd(t.Minute)
	buf[Hours] = decToBcd(t.Hour)
	buf[Day] = decToBcd(t.Weekday)
	buf[Date] = decToBcd(t.Day)
	buf[Month] = decToBcd(t.Month) | century
	buf[Year] = decToBcd(year)
	return nil
}

func unpackTime(buf []byte) Time {
	t := Time{
		Second:  bcdToDec(buf[Seconds] & 0x7F),
		Minute:  bcdToDec(buf[Minutes] & 0x7F),
		Hour:    hoursToDec(buf[Hours]),
		Weekday: bcdToDec(buf[Day] & 0x07),
		Day:     bcdToDec(buf[Date] & 0x3F),
		Month:   bcdToDec(buf[Month] & 0x1F),
		Year:    bcdToDec(buf[Year]) + 2000,
	}
	if buf[Month]&(1<<Century) != 0 {
		t.Year += 100
	}
	return t
}

// ReadRegisters reads len(buf) consecutive registers starting at reg. No bounds checking is done.
func (d *Device) ReadRegisters(reg uint8, buf []byte) error {
	return d.bus.ReadRegister(d.Address, reg, buf)
}

// WriteRegisters writes buf to consecutive registers starting at reg. No bounds checking is done.
func (d *Device) WriteRegisters(reg uint8, buf []byte) error {
	return d.bus.WriteRegister(d.Address, reg, buf)
}

func (d *Device) read8(reg uint8) (uint8, error) {
	buf := [1]byte{}
	err := d.bus.ReadRegister(d.Address, reg, buf[:])
	return buf[0], err
}

func (d *Device) write8(reg, val uint8) error {
	buf := [1]byte{val}
	return d.bus.WriteRegister(d.Address, reg, buf[:])
}

// setBit sets or clears a single register bit, skipping the write when the bit already has the wanted value.
func (d *Device) setBit(reg, bit uint8, set bool) error {
	val, err := d.read8(reg)
	if err != nil {
		return err
	}
	mask := uint8(1) << bit
	if (val&mask != 0) == set {
		return nil
	}
	if set {
		val |= mask
	} else {
		val &^= mask
	}
	return d.write8(reg, val)
}

// testAndClear reports whether a status bit is set, clearing it when asked to.
func (d *Device) testAndClear(reg, bit uint8, clear bool) (bool, error) {
	val, err := d.read8(reg)
	if err != nil {
		return false, err
	}
	mask := uint8(1) << bit
	if val&mask == 0 {
		return false, nil
	}
	if clear {
		err = d.write8(reg, val&^mask)
		if err != nil {
			return true, err
		}
	}
	return true, nil
}
