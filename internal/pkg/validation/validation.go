package validation

import "regexp"

// Listing ids are registry-style codes: uppercase letters and digits,
// optionally dash-separated (e.g. "CC001", "VCS-2024-011").
var listingIDRe = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

// Currency codes: 3-5 uppercase letters (ISO or stable-token codes).
var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3,5}$`)

func IsValidListingID(id string) bool {
	return id != "" && listingIDRe.MatchString(id)
}

func IsValidCurrencyCode(code string) bool {
	return currencyCodeRe.MatchString(code)
}
