package ds3232

const Address = 0x68 // I2C address for DS3231 and DS3232

// Registers
const (
	Seconds       = 0x00 // Time registers starting with seconds
	Minutes       = 0x01
	Hours         = 0x02
	Day           = 0x03 // Day of week, 1-7
	Date          = 0x04 // Day of month
	Month         = 0x05 // Month, bit 7 holds the century
	Year          = 0x06
	Alarm1Seconds = 0x07 // Alarm 1 registers starting with seconds
	Alarm1Minutes = 0x08
	Alarm1Hours   = 0x09
	Alarm1DayDate = 0x0A
	Alarm2Minutes = 0x0B // Alarm 2 registers starting with minutes
	Alarm2Hours   = 0x0C
	Alarm2DayDate = 0x0D
	Control       = 0x0E // Control register
	Status        = 0x0F // Control/status register
	Aging         = 0x10 // Aging offset register
	TempMSB       = 0x11 // Temperature registers, MSB first
	TempLSB       = 0x12
	SRAMStart     = 0x14 // First SRAM address (DS3232 only)
	SRAMSize      = 236  // Bytes of SRAM (DS3232 only)
)

// Control register bits
const (
	A1IE  = 0 // Alarm 1 interrupt enable
	A2IE  = 1 // Alarm 2 interrupt enable
	INTCN = 2 // Interrupt control, square wave disabled when set
	RS1   = 3 // Rate select
	RS2   = 4
	CONV  = 5 // Convert temperature
	BBSQW = 6 // Battery-backed square wave enable
	EOSC  = 7 // Enable oscillator, active low
)

// Status register bits
const (
	A1F     = 0 // Alarm 1 flag
	A2F     = 1 // Alarm 2 flag
	BSY     = 2 // Busy
	EN32KHZ = 3 // Enable 32kHz output
	CRATE0  = 4 // Conversion rate (DS3232 only)
	CRATE1  = 5
	BB32KHZ = 6 // Battery-backed 32kHz output (DS3232 only)
	OSF     = 7 // Oscillator stop flag
)

// Other bits
const (
	DYDT      = 6 // Day/date flag in the alarm day/date registers, day when set
	HR1224    = 6 // 12 hour mode when set in the hours registers
	AMPM      = 5 // PM when set in 12 hour mode
	Century   = 7 // Century bit in the month register
	AlarmMask = 7 // Mask bit in every alarm register
)

const (
	timeFields  = 7
	alarmFields = 4

	rateSelectMask = 0b1110_0011 // all but rate select and interrupt control
)
