// Package kenya holds the marketplace's regional reference data and
// formatting helpers.
package kenya

import (
	"fmt"
	"strings"
	"unicode"
)

var Counties = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Thika",
	"Malindi", "Kitale", "Garissa", "Kakamega", "Machakos", "Meru",
	"Nyeri", "Kericho", "Embu", "Migori", "Homa Bay", "Turkana",
	"West Pokot", "Samburu", "Trans Nzoia", "Uasin Gishu",
	"Elgeyo-Marakwet", "Nandi", "Baringo", "Laikipia", "Narok",
	"Kajiado", "Bomet", "Vihiga", "Bungoma", "Busia", "Siaya",
	"Kisii", "Nyamira", "Kiambu", "Murang'a", "Kirinyaga",
	"Nyandarua", "Tharaka-Nithi", "Kitui", "Makueni",
}

var EventCategories = []string{
	"Technology & Innovation",
	"Business & Entrepreneurship",
	"Music & Entertainment",
	"Sports & Fitness",
	"Education & Training",
	"Arts & Culture",
	"Food & Drinks",
	"Health & Wellness",
	"Fashion & Beauty",
	"Agriculture",
	"Tourism & Travel",
	"Community & Social",
	"Religious & Spiritual",
	"Politics & Governance",
}

// FormatCurrency renders whole Kenyan shillings with a thousands
// separator, e.g. 15000 -> "KES 15,000".
func FormatCurrency(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if negative {
		return "KES -" + b.String()
	}
	return "KES " + b.String()
}

// FormatPhoneNumber normalises a Kenyan phone number to +254 form.
// Inputs it cannot make sense of are returned unchanged.
func FormatPhoneNumber(phone string) string {
	var cleaned strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			cleaned.WriteRune(r)
		}
	}
	digits := cleaned.String()

	switch {
	case strings.HasPrefix(digits, "254"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+254" + digits[1:]
	case len(digits) == 9:
		return "+254" + digits
	}
	return phone
}

// ValidPhoneNumber reports whether the input normalises to a plausible
// Kenyan mobile number.
func ValidPhoneNumber(phone string) bool {
	formatted := FormatPhoneNumber(phone)
	return strings.HasPrefix(formatted, "+254") && len(formatted) == 13
}
