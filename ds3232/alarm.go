package ds3232

// Alarm selects one of the two alarm units.
type Alarm uint8

const (
	Alarm1 Alarm = iota
	Alarm2
)

// AlarmType is the match granularity of an alarm. Bit i is set when field i of AlarmTime (second, minute, hour,
// day/date) is masked out of the comparison; MatchDay marks the day/date field as a day of week.
type AlarmType uint8

const (
	MatchAny     AlarmType = 0x0F // once per second
	MatchSeconds AlarmType = 0x0E // seconds match
	MatchMinutes AlarmType = 0x0C // minutes and seconds match
	MatchHours   AlarmType = 0x08 // hours, minutes and seconds match
	MatchDay     AlarmType = 0x10 // day of week, hours, minutes and seconds match
	MatchDate    AlarmType = 0x00 // date, hours, minutes and seconds match

	// Shorthands for alarms firing at zero seconds past the period.
	EverySecond = MatchAny
	EveryMinute = MatchSeconds
	EveryHour   = MatchMinutes
	EveryDay    = MatchHours
	EveryWeek   = MatchDay
	EveryMonth  = MatchDate
)

// Alarm field order, matching the register layout.
const (
	almSecond = iota
	almMinute
	almHour
	almDayDate
)

// AlarmTime holds the alarm registers decoded to binary. DayDate is a day of week (1-7) for MatchDay alarms and a day
// of month (1-31) otherwise; it may be zero when the match type masks it. Alarm 2 has no seconds register, so Second is ignored when setting it and zero when reading it.
type AlarmTime struct {
	Second  int
	Minute  int
	Hour    int
	DayDate int
}

// alarmMatches lists, for every match type, the fields whose mask bit is set and whether day/date holds a weekday.
var alarmMatches = [...]struct {
	match   AlarmType
	masked  [alarmFields]bool
	dayMode bool
}{
	{MatchAny, [alarmFields]bool{true, true, true, true}, false},
	{MatchSeconds, [alarmFields]bool{false, true, true, true}, false},
	{MatchMinutes, [alarmFields]bool{false, false, true, true}, false},
	{MatchHours, [alarmFields]bool{false, false, false, true}, false},
	{MatchDay, [alarmFields]bool{}, true},
	{MatchDate, [alarmFields]bool{}, false},
}

// SetAlarm programs the alarm registers of the given unit. It does not enable the interrupt; use SetAlarmInterrupt to
// have the INT pin asserted on a match.
func (d *Device) SetAlarm(a Alarm, match AlarmType, t AlarmTime) error {
	if a > Alarm2 {
		return ErrInvalidAlarm
	}
	buf, err := packAlarm(match, t)
	if err != nil {
		return err
	}
	if a == Alarm1 {
		return d.bus.WriteRegister(d.Address, Alarm1Seconds, buf[:])
	}
	return d.bus.WriteRegister(d.Address, Alarm2Minutes, buf[almMinute:])
}

// ReadAlarm reads back the alarm registers of the given unit together with the match type encoded in their mask bits.
// Alarm 2 always reports an unmasked zero second, so an alarm 2 set to MatchAny reads back as MatchSeconds: it fires
// once per minute, at zero seconds.
func (d *Device) ReadAlarm(a Alarm) (AlarmType, AlarmTime, error) {
	buf := [alarmFields]byte{}
	var err error
	switch a {
	case Alarm1:
		err = d.bus.ReadRegister(d.Address, Alarm1Seconds, buf[:])
	case Alarm2:
		err = d.bus.ReadRegister(d.Address, Alarm2Minutes, buf[almMinute:])
	default:
		return 0, AlarmTime{}, ErrInvalidAlarm
	}
	if err != nil {
		return 0, AlarmTime{}, err
	}
	match, t := unpackAlarm(buf[:])
	return match, t, nil
}

// SetAlarmInterrupt enables or disables the INT pin for the given alarm. Nothing is written if the interrupt is
// already in the requested state.
func (d *Device) SetAlarmInterrupt(a Alarm, enable bool) error {
	if a > Alarm2 {
		return ErrInvalidAlarm
	}
	return d.setBit(Control, A1IE+uint8(a), enable)
}

// Alarm reports whether the given alarm has fired. When clear is true a set flag is reset so the alarm can fire again.
func (d *Device) Alarm(a Alarm, clear bool) (bool, error) {
	if a > Alarm2 {
		return false, ErrInvalidAlarm
	}
	return d.testAndClear(Status, A1F+uint8(a), clear)
}

func packAlarm(match AlarmType, t AlarmTime) ([alarmFields]byte, error) {
	buf := [alarmFields]byte{}
	for _, m := range alarmMatches {
		if m.match != match {
			continue
		}
		days := 31
		if m.dayMode {
			days = 7
		}
		firstDay := 1
		if m.masked[almDayDate] {
			firstDay = 0
		}
		if !inRange(t.Second, 0, 59) || !inRange(t.Minute, 0, 59) || !inRange(t.Hour, 0, 23) ||
			!inRange(t.DayDate, firstDay, days) {
			return buf, ErrFieldRange
		}
		buf = [alarmFields]byte{
			almSecond:  decToBcd(t.Second),
			almMinute:  decToBcd(t.Minute),
			almHour:    decToBcd(t.Hour),
			almDayDate: decToBcd(t.DayDate),
		}
		for i, masked := range m.masked {
			if masked {
				buf[i] |= 1 << AlarmMask
			}
		}
		if m.dayMode {
			buf[almDayDate] |= 1 << DYDT
		}
		return buf, nil
	}
	return buf, ErrInvalidMatch
}

func unpackAlarm(buf []byte) (AlarmType, AlarmTime) {
	var match AlarmType
	for i, b := range buf {
		if b&(1<<AlarmMask) != 0 {
			match |= 1 << i
		}
	}
	if buf[almDayDate]&(1<<DYDT) != 0 {
		match |= MatchDay
	}
	t := AlarmTime{
		Second:  bcdToDec(buf[almSecond] & 0x7F),
		Minute:  bcdToDec(buf[almMinute] & 0x7F),
		Hour:    hoursToDec(buf[almHour] & 0x7F),
		DayDate: bcdToDec(buf[almDayDate] & 0x3F),
	}
	return match, t
}
