package ds3232

// ReadSRAM reads len(buf) bytes of battery-backed SRAM starting at offset (0 is the first SRAM byte). DS3232 only.
func (d *Device) ReadSRAM(offset int, buf []byte) error {
	if err := d.checkSRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.bus.ReadRegister(d.Address, uint8(SRAMStart+offset), buf)
}

// WriteSRAM writes buf to battery-backed SRAM starting at offset. DS3232 only.
func (d *Device) WriteSRAM(offset int, buf []byte) error {
	if err := d.checkSRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.bus.WriteRegister(d.Address, uint8(SRAMStart+offset), buf)
}

func (d *Device) checkSRAM(offset, n int) error {
	if d.Model != DS3232 {
		return ErrNotSupported
	}
	if offset < 0 || offset > SRAMSize || n == 0 || n > SRAMSize-offset {
		return ErrSRAMRange
	}
	return nil
}
