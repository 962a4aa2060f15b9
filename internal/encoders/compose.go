package encoders

import "strings"

// Compose joins the non-empty parts with sep. Absent parts leave no stray
// separators behind.
func Compose(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Capitalize upper-cases the first letter of s, leaving the rest alone.
// Form labels like "dowód osobisty" print as "Dowód osobisty".
func Capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// ComposeAddress renders a structured address as a single line:
// "ul. Polna 12/3, 00-001 Warszawa". Missing pieces collapse cleanly.
func ComposeAddress(street, houseNumber, unitNumber, postalCode, city string) string {
	building := Compose("/", houseNumber, unitNumber)
	return Compose(", ",
		Compose(" ", street, building),
		Compose(" ", postalCode, city),
	)
}
