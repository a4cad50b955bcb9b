package plans

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unlimited marks a plan with no monthly send ceiling (-1).
const Unlimited int64 = -1

// Default is the plan assigned to accounts with a missing or unrecognized
// plan value. It carries the most restrictive ceiling.
const Default = "free"

// Plan describes a service tier and its monthly send ceiling.
type Plan struct {
	ID           string
	Name         string
	MonthlyLimit int64
}

// table is the immutable plan catalog. Mutating plan definitions at runtime
// is not supported; pricing changes ship as code changes.
var table = map[string]Plan{
	"free":       {ID: "free", Name: "Free", MonthlyLimit: 3000},
	"pro":        {ID: "pro", Name: "Pro", MonthlyLimit: 50000},
	"enterprise": {ID: "enterprise", Name: "Enterprise", MonthlyLimit: Unlimited},
}

// Resolve maps a stored plan value to its catalog entry. Lookup is
// case-insensitive; unknown values fall back to the Default plan so an
// unrecognized tier can never grant more quota than the cheapest one.
func Resolve(plan string) Plan {
	if p, ok := table[strings.ToLower(strings.TrimSpace(plan))]; ok {
		return p
	}
	return table[Default]
}

// Limit returns the monthly send ceiling for a plan value.
func Limit(plan string) int64 {
	return Resolve(plan).MonthlyLimit
}

// IsUnlimited reports whether a limit value means "no ceiling".
func IsUnlimited(limit int64) bool {
	return limit == Unlimited
}

var limitPrinter = message.NewPrinter(language.English)

// FormatLimit renders a ceiling for human-readable messages, with thousands
// separators ("3,000"). Unlimited renders as "unlimited".
func FormatLimit(limit int64) string {
	if IsUnlimited(limit) {
		return "unlimited"
	}
	return limitPrinter.Sprintf("%d", limit)
}
