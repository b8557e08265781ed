package ds3232

// decToBcd converts int to BCD
func decToBcd(dec int) uint8 {
	return uint8(dec + 6*(dec/10))
}

// bcdToDec converts BCD to int
func bcdToDec(bcd uint8) int {
	return int(bcd - 6*(bcd>>4))
}

// hoursToDec converts an hours register to 0-23, honoring 12 hour mode.
func hoursToDec(bcd uint8) int {
	if bcd&(1<<HR1224) == 0 {
		return bcdToDec(bcd & 0x3F)
	}
	hour := bcdToDec(bcd & 0x1F)
	if hour == 12 {
		hour = 0
	}
	if bcd&(1<<AMPM) != 0 {
		hour += 12
	}
	return hour
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
