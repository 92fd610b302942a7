package kernel

import (
	"regexp"
	"strings"
)

// Address is a value object holding the parsed components of a postal address.
// Any component other than Street may be empty: parsing is tolerant and
// degrades to storing the raw input as the street line rather than failing.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

var (
	stateZipRe      = regexp.MustCompile(`([A-Za-z]{2})\s+(\d{5}(-\d{4})?)$`)
	bareStateRe     = regexp.MustCompile(`\b([A-Za-z]{2})$`)
	trailingStateRe = regexp.MustCompile(`\b([A-Z]{2})\s*(\d{5}(-\d{4})?)?\s*$`)
)

// ParseAddress parses a free-text address into its components.
// Accepted shapes, tried most to least specific:
//
//	"123 Main St, Venice, FL 34292"
//	"123 Main St, Venice, FL"
//	"123 Main St, Venice FL 34292"
//	"123 Main St Venice FL 34292"
//
// When no shape matches, the whole string is kept as the street line with
// city/state/zip empty. Parsing never fails.
func ParseAddress(raw string) Address {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Address{Street: raw}
	}

	parts := strings.Split(trimmed, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 3 {
		last := parts[len(parts)-1]
		if m := stateZipRe.FindStringSubmatch(last); m != nil {
			return Address{
				Street: strings.Join(parts[:len(parts)-2], ", "),
				City:   parts[len(parts)-2],
				State:  strings.ToUpper(m[1]),
				Zip:    m[2],
			}
		}
		if len(last) == 2 && bareStateRe.MatchString(last) {
			return Address{
				Street: strings.Join(parts[:len(parts)-2], ", "),
				City:   parts[len(parts)-2],
				State:  strings.ToUpper(last),
			}
		}
	}

	if len(parts) == 2 {
		last := parts[1]
		if loc := stateZipRe.FindStringSubmatchIndex(last); loc != nil {
			m := stateZipRe.FindStringSubmatch(last)
			return Address{
				Street: parts[0],
				City:   strings.TrimSpace(last[:loc[0]]),
				State:  strings.ToUpper(m[1]),
				Zip:    m[2],
			}
		}
		if loc := bareStateRe.FindStringIndex(last); loc != nil {
			city := strings.TrimSpace(last[:loc[0]])
			if city != "" {
				return Address{
					Street: parts[0],
					City:   city,
					State:  strings.ToUpper(last[loc[0]:]),
				}
			}
		}
	}

	// No comma structure: look for a trailing "ST 12345" or bare uppercase
	// state code and split the remainder into street and city.
	if loc := trailingStateRe.FindStringSubmatchIndex(trimmed); loc != nil {
		m := trailingStateRe.FindStringSubmatch(trimmed)
		if m[2] != "" || m[1] == strings.ToUpper(m[1]) {
			before := strings.TrimSpace(trimmed[:loc[0]])
			beforeParts := strings.Split(before, ",")
			for i := range beforeParts {
				beforeParts[i] = strings.TrimSpace(beforeParts[i])
			}
			if len(beforeParts) >= 2 {
				return Address{
					Street: strings.Join(beforeParts[:len(beforeParts)-1], ", "),
					City:   beforeParts[len(beforeParts)-1],
					State:  strings.ToUpper(m[1]),
					Zip:    m[2],
				}
			}
			return Address{
				Street: before,
				State:  strings.ToUpper(m[1]),
				Zip:    m[2],
			}
		}
	}

	return Address{Street: raw}
}

// IsZero reports whether the address carries no data at all.
func (a Address) IsZero() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.Zip == ""
}

// NormalizeZip returns the zip as a five-digit numeric value when possible.
// Some external systems expect numeric US zip codes; non-numeric or partial
// zips are passed through unchanged as strings.
func NormalizeZip(zip string) any {
	s := strings.TrimSpace(zip)
	if s == "" {
		return nil
	}
	if len(s) == 5 {
		numeric := true
		for _, r := range s {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			n := 0
			for _, r := range s {
				n = n*10 + int(r-'0')
			}
			return n
		}
	}
	return s
}
