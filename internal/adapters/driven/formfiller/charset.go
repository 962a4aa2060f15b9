package formfiller

// cp1250Letters lists the non-ASCII letters representable in the
// Windows-1250 encoding the printed forms use. ASCII is always allowed.
// Grouped by language for readability; the form-filler service rejects
// anything outside this set, so we reject it up front.
const cp1250Letters = "" +
	"ąćęłńóśźżĄĆĘŁŃÓŚŹŻ" + // Polish
	"áčďéěíňřšťúůýžÁČĎÉĚÍŇŘŠŤÚŮÝŽ" + // Czech
	"äĺľôÄĹĽÔ" + // Slovak
	"őűŐŰöüÖÜ" + // Hungarian
	"âîşţăÂÎŞŢĂ" + // Romanian
	"ß§°"

var cp1250Extras = map[rune]struct{}{}

func init() {
	for _, r := range cp1250Letters {
		cp1250Extras[r] = struct{}{}
	}
}

// encodable reports whether r survives a round trip through the form's
// character set.
func encodable(r rune) bool {
	if r < 0x80 {
		return true
	}
	_, ok := cp1250Extras[r]
	return ok
}
