package encoders

import "strings"

// polishToLatin maps each Polish diacritic to its closest base-Latin
// letter. Everything else passes through unchanged, which makes the
// transform idempotent.
var polishToLatin = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
	'Ą': 'A', 'Ć': 'C', 'Ę': 'E', 'Ł': 'L', 'Ń': 'N',
	'Ó': 'O', 'Ś': 'S', 'Ź': 'Z', 'Ż': 'Z',
}

// Transliterate substitutes Polish diacritics with unaccented letters.
func Transliterate(s string) string {
	return strings.Map(func(r rune) rune {
		if sub, ok := polishToLatin[r]; ok {
			return sub
		}
		return r
	}, s)
}
