package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatAmount renders a decimal string as "<currency> 1,299.50". Values that
// do not parse are returned as given, prefixed with the currency.
func FormatAmount(currency, amount string) string {
	amount = strings.TrimSpace(amount)
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return strings.TrimSpace(currency + " " + amount)
	}
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	fixed := strconv.FormatFloat(value, 'f', 2, 64)
	whole, frac, _ := strings.Cut(fixed, ".")
	return strings.TrimSpace(fmt.Sprintf("%s %s%s.%s", currency, sign, groupThousands(whole), frac))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatSchedule renders a slot as "Mon, 02 Nov 2026, 09:00 - 11:00".
func FormatSchedule(date, start, end string) string {
	day := date
	if t, err := time.Parse("2006-01-02", date); err == nil {
		day = t.Format("Mon, 02 Jan 2006")
	}
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("%s, %s - %s", day, start, end)
	case start != "":
		return fmt.Sprintf("%s, %s", day, start)
	}
	return day
}

// Number is the invoice number printed for a booking.
func Number(bookingID string) string {
	return "INV-" + bookingID
}
