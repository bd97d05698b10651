package utils

import (
	"time"

	"github.com/jinzhu/now"
)

// CalculateAge calculates age in Years, Months, and Days from a date of birth
func CalculateAge(dob time.Time) (int, int, int) {
	currentTime := time.Now()

	years := currentTime.Year() - dob.Year()
	months := int(currentTime.Month()) - int(dob.Month())
	days := currentTime.Day() - dob.Day()

	// Adjust for negative months (if birthday hasn't occurred this year)
	if months < 0 {
		years--
		months += 12
	}

	// Adjust for negative days (if birthday day hasn't occurred this month)
	if days < 0 {
		previousMonth := now.With(currentTime).BeginningOfMonth().AddDate(0, 0, -1)
		days += previousMonth.Day()
		months--
	}

	return years, months, days
}
