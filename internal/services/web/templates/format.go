package templates

import (
	"strconv"

	"golang.org/x/text/number"

	"github.com/nominaweb/nominaweb/internal/domain"
)

const (
	moneyFormatKey   = "core.format.money"
	percentFormatKey = "core.format.percent"
	numberFormatKey  = "core.format.number"
	yesKey           = "core.value.yes"
	noKey            = "core.value.no"
	emptyValue       = "-"
)

// Money formats an amount with the locale's grouping and two decimals.
func Money(loc Localizer, value domain.Decimal) string {
	return MoneyFloat(loc, value.Float())
}

// MoneyFloat formats a float amount like Money.
func MoneyFloat(loc Localizer, value float64) string {
	if loc == nil {
		return "$ " + domain.Decimal(value).String()
	}
	return loc.Sprintf(moneyFormatKey, number.Decimal(domain.Round2(value), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent formats a monthly rate expressed in percent.
func Percent(loc Localizer, value domain.Decimal) string {
	if loc == nil {
		return value.String() + " %"
	}
	return loc.Sprintf(percentFormatKey, number.Decimal(value.Float(), number.MaxFractionDigits(2)))
}

// Number formats an integer with locale grouping.
func Number(loc Localizer, value int) string {
	if loc == nil {
		return strconv.Itoa(value)
	}
	return loc.Sprintf(numberFormatKey, number.Decimal(value))
}

// Date renders a calendar date or a dash when unset.
func Date(value domain.Date) string {
	if value.IsZero() {
		return emptyValue
	}
	return value.String()
}

// YesNo renders a boolean as a localized yes or no.
func YesNo(loc Localizer, value bool) string {
	if value {
		return T(loc, yesKey)
	}
	return T(loc, noKey)
}

// OrDash returns value or a dash for blank strings.
func OrDash(value string) string {
	if value == "" {
		return emptyValue
	}
	return value
}

// InputAmount renders an amount as an input value, blank when zero.
func InputAmount(value domain.Decimal) string {
	if value.Cents() == 0 {
		return ""
	}
	return value.String()
}
