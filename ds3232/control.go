package ds3232

// SquareWave is the frequency of the INT/SQW output. SquareWaveNone switches the pin to alarm interrupt mode.
type SquareWave uint8

const (
	SquareWave1Hz SquareWave = iota
	SquareWave1024Hz
	SquareWave4096Hz
	SquareWave8192Hz
	SquareWaveNone
)

// ConversionRate is how often the DS3232 samples its temperature sensor on its own.
type ConversionRate uint8

const (
	ConversionRate64s ConversionRate = iota
	ConversionRate128s
	ConversionRate256s
	ConversionRate512s
)

// SetSquareWave enables the square wave output at the given frequency, or disables it with SquareWaveNone. Nothing is
// written if the control register already holds the requested setting.
func (d *Device) SetSquareWave(freq SquareWave) error {
	if freq > SquareWaveNone {
		return ErrInvalidFrequency
	}
	if freq == SquareWaveNone {
		return d.setBit(Control, INTCN, true)
	}
	ctrl, err := d.read8(Control)
	if err != nil {
		return err
	}
	val := ctrl&rateSelectMask | uint8(freq)<<RS1
	if val == ctrl {
		return nil
	}
	return d.write8(Control, val)
}

// OscillatorStopped reports whether the oscillator stop flag is set, meaning the oscillator stopped at some point and
// the time may be invalid. When clear is true the flag is reset.
func (d *Device) OscillatorStopped(clear bool) (bool, error) {
	return d.testAndClear(Status, OSF, clear)
}

// SetOscillatorEnabled controls whether the oscillator keeps running on battery power. It always runs on Vcc.
func (d *Device) SetOscillatorEnabled(enable bool) error {
	return d.setBit(Control, EOSC, !enable)
}

// SetBatteryBackedSquareWave controls whether the square wave output keeps running on battery power.
func (d *Device) SetBatteryBackedSquareWave(enable bool) error {
	return d.setBit(Control, BBSQW, enable)
}

// Enable32kHz enables or disables the 32kHz output pin.
func (d *Device) Enable32kHz(enable bool) error {
	return d.setBit(Status, EN32KHZ, enable)
}

// SetBatteryBacked32kHz controls whether the 32kHz output keeps running on battery power. DS3232 only.
func (d *Device) SetBatteryBacked32kHz(enable bool) error {
	if d.Model != DS3232 {
		return ErrNotSupported
	}
	return d.setBit(Status, BB32KHZ, enable)
}

// SetConversionRate sets the automatic temperature conversion interval. DS3232 only.
func (d *Device) SetConversionRate(rate ConversionRate) error {
	if d.Model != DS3232 {
		return ErrNotSupported
	}
	if rate > ConversionRate512s {
		return ErrInvalidRate
	}
	status, err := d.read8(Status)
	if err != nil {
		return err
	}
	val := status&^(0b11<<CRATE0) | uint8(rate)<<CRATE0
	if val == status {
		return nil
	}
	return d.write8(Status, val)
}

// Busy reports whether a temperature conversion is in progress.
func (d *Device) Busy() (bool, error) {
	status, err := d.read8(Status)
	return status&(1<<BSY) != 0, err
}

// ConvertTemperature starts a temperature conversion and TCXO update. It returns ErrBusy if the chip is already
// converting on its own.
func (d *Device) ConvertTemperature() error {
	busy, err := d.Busy()
	if err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}
	return d.setBit(Control, CONV, true)
}

// ReadTemperatureRaw returns the temperature in quarter degrees Celsius.
func (d *Device) ReadTemperatureRaw() (int16, error) {
	buf := [2]byte{}
	err := d.bus.ReadRegister(d.Address, TempMSB, buf[:])
	if err != nil {
		return 0, err
	}
	// upper 10 bits are valid, the arithmetic shift keeps the sign
	return int16(uint16(buf[0])<<8|uint16(buf[1])) >> 6, nil
}

// ReadTemperature returns the temperature in millicelsius (mC).
func (d *Device) ReadTemperature() (int32, error) {
	q, err := d.ReadTemperatureRaw()
	return int32(q) * 250, err
}

// AgingOffset returns the aging offset, in steps of roughly 0.1ppm. Positive values slow the clock down.
func (d *Device) AgingOffset() (int8, error) {
	val, err := d.read8(Aging)
	return int8(val), err
}

// SetAgingOffset writes the aging offset. The new value takes effect at the next temperature conversion.
func (d *Device) SetAgingOffset(offset int8) error {
	return d.write8(Aging, uint8(offset))
}
