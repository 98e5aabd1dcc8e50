package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBirthdayWithin(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		today    time.Time
		days     int
		want     bool
	}{
		{"inside window", date(1998, time.June, 3), date(2024, time.June, 1), 7, true},
		{"already passed this year", date(1998, time.June, 3), date(2024, time.June, 10), 7, false},
		{"today counts", date(1990, time.March, 4), date(2024, time.March, 4), 0, true},
		{"last day inclusive", date(1990, time.March, 11), date(2024, time.March, 4), 7, true},
		{"one day past window", date(1990, time.March, 12), date(2024, time.March, 4), 7, false},
		{"no rollover across new year", date(1990, time.January, 2), date(2024, time.December, 30), 7, false},
		{"negative window", date(1990, time.March, 4), date(2024, time.March, 4), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BirthdayWithin(tt.birthday, tt.today, tt.days))
		})
	}
}

func TestBirthdayWithin_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 3, 18, 30, 0, 0, time.UTC)
	assert.True(t, BirthdayWithin(date(2000, time.June, 3), today, 0))
}

func TestBirthdayThisYear_LeapDay(t *testing.T) {
	leapling := date(2000, time.February, 29)

	assert.Equal(t, date(2023, time.February, 28), BirthdayThisYear(leapling, date(2023, time.January, 1)))
	assert.Equal(t, date(2024, time.February, 29), BirthdayThisYear(leapling, date(2024, time.January, 1)))
	assert.Equal(t, date(2100, time.February, 28), BirthdayThisYear(leapling, date(2100, time.January, 1)))
	assert.True(t, BirthdayWithin(leapling, date(2023, time.February, 25), 3))
}

func TestContactApply_KeepsOwnership(t *testing.T) {
	c := &Contact{ID: "c-1", UserID: "u-1", Name: "old"}
	notes := "met at work"

	c.Apply(ContactFields{Name: "new", Surname: "surname", Notes: &notes})

	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "new", c.Name)
	assert.Equal(t, &notes, c.Notes)
}
