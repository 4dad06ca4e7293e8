package domain

// ValidDate reports whether s is a YYYY-MM-DD date with year 1900-2100,
// month 1-12 and day 1-31. Month length and leap years are not checked.
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok := digits(s[0:4])
	if !ok {
		return false
	}
	month, ok := digits(s[5:7])
	if !ok {
		return false
	}
	day, ok := digits(s[8:10])
	if !ok {
		return false
	}
	if year < 1900 || year > 2100 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= 31
}

// ValidTime reports whether s is a 24-hour HH:MM time.
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hour, ok := digits(s[0:2])
	if !ok {
		return false
	}
	minute, ok := digits(s[3:5])
	if !ok {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// digits parses a run of ASCII digits. Unlike strconv.Atoi it rejects
// signs and spaces, so "2-05" style fragments cannot sneak through.
func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
