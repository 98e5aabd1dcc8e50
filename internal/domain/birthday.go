package domain

import "time"

// MaxBirthdayWindow is the largest look-ahead accepted by the birthday search, in days
const MaxBirthdayWindow = 365

// BirthdayThisYear projects the month and day of birthday onto the year of today.
// Feb 29 becomes Feb 28 when that year is not a leap year.
func BirthdayThisYear(birthday, today time.Time) time.Time {
	year := today.Year()
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, today.Location())
}

// BirthdayWithin reports whether the birthday, projected onto the current year,
// falls in [today, today+days]. Dates are compared without time of day.
// Birthdays that already passed this year do not roll over to the next one.
func BirthdayWithin(birthday, today time.Time, days int) bool {
	if days < 0 {
		return false
	}
	start := truncateDay(today)
	end := start.AddDate(0, 0, days)
	projected := BirthdayThisYear(birthday, start)
	return !projected.Before(start) && !projected.After(end)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
