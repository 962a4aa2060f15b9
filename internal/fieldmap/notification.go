package fieldmap

import (
	"fmt"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
)

// Field identifiers are opaque keys fixed by the government template. The
// helpers below only assemble the hierarchical prefix the template uses
// for every field on a page; they never interpret the identifier.
func page(n int, name string) string {
	return fmt.Sprintf("topmostSubform[0].Page%d[0].%s[0]", n, name)
}

func text(id string, fn TextExtractor) Entry {
	return Entry{FieldID: id, Kind: domain.FieldText, Text: fn}
}

// date wraps a raw extractor with the DDMMYYYY encoder.
func date(id string, fn TextExtractor) Entry {
	return Entry{FieldID: id, Kind: domain.FieldText, Text: func(s *domain.CaseSnapshot) string {
		return encoders.Date(fn(s))
	}}
}

func dropdown(id string, fn TextExtractor) Entry {
	return Entry{FieldID: id, Kind: domain.FieldDropdown, Text: fn}
}

func check(id string, fn CheckExtractor) Entry {
	return Entry{FieldID: id, Kind: domain.FieldCheckbox, Check: fn}
}

// checked lifts an optional-bool accessor into a CheckExtractor.
func checked(fn func(s *domain.CaseSnapshot) *bool) CheckExtractor {
	return func(s *domain.CaseSnapshot) encoders.CheckState {
		return encoders.Checkbox(fn(s))
	}
}

// Notification builds the registry for the workplace-accident notification
// template. The table is data: one entry per template field, grouped the
// way the form groups them. Building it cannot fail unless the table
// itself carries a duplicate, which the registry tests pin down.
func Notification() *Registry {
	var entries []Entry

	entries = append(entries, victimEntries()...)
	entries = append(entries, addressBlock(1, "Zam", func(s *domain.CaseSnapshot) *domain.Address {
		return &s.Addresses.Residential
	})...)
	entries = append(entries, addressBlock(2, "Dzial", func(s *domain.CaseSnapshot) *domain.Address {
		return &s.Addresses.Business
	})...)
	entries = append(entries, addressBlock(2, "OstatniPL", func(s *domain.CaseSnapshot) *domain.Address {
		return s.Addresses.LastResidentialInPoland
	})...)
	entries = append(entries, addressBlock(2, "Opieka", func(s *domain.CaseSnapshot) *domain.Address {
		return s.Addresses.Childcare
	})...)
	entries = append(entries, correspondenceEntries()...)
	entries = append(entries, businessEntries()...)
	entries = append(entries, accidentEntries()...)
	entries = append(entries, representativeEntries()...)
	entries = append(entries, witnessEntries()...)
	entries = append(entries, attachmentEntries()...)

	entries = append(entries, date(page(4, "DataPodpisu"), func(s *domain.CaseSnapshot) string {
		return s.SignatureDate
	}))

	r, err := NewRegistry(entries)
	if err != nil {
		panic(fmt.Sprintf("fieldmap: notification table invalid: %v", err))
	}
	return r
}

func victimEntries() []Entry {
	return []Entry{
		text(page(1, "Pesel"), func(s *domain.CaseSnapshot) string {
			return s.Personal.PESEL
		}),
		text(page(1, "DokumentTozsamosci"), func(s *domain.CaseSnapshot) string {
			d := s.Personal.IdentityDocument
			return encoders.Compose(" ",
				encoders.Capitalize(encoders.Transliterate(d.Kind)),
				d.Series,
				d.Number,
			)
		}),
		text(page(1, "Imie"), func(s *domain.CaseSnapshot) string {
			return s.Personal.GivenName
		}),
		text(page(1, "Nazwisko"), func(s *domain.CaseSnapshot) string {
			return s.Personal.FamilyName
		}),
		date(page(1, "DataUrodzenia"), func(s *domain.CaseSnapshot) string {
			return s.Personal.BirthDate
		}),
		text(page(1, "MiejsceUrodzenia"), func(s *domain.CaseSnapshot) string {
			return s.Personal.BirthPlace
		}),
		text(page(1, "Telefon"), func(s *domain.CaseSnapshot) string {
			return s.Personal.Phone
		}),
		text(page(1, "Email"), func(s *domain.CaseSnapshot) string {
			return s.Personal.Email
		}),
	}
}

// addressBlock maps one of the form's address sections. The getter may
// return nil (optional sections); every extractor then yields "".
func addressBlock(pg int, suffix string, get func(s *domain.CaseSnapshot) *domain.Address) []Entry {
	field := func(fn func(a *domain.Address) string) TextExtractor {
		return func(s *domain.CaseSnapshot) string {
			a := get(s)
			if a == nil {
				return ""
			}
			return fn(a)
		}
	}

	return []Entry{
		text(page(pg, "Ulica"+suffix), field(func(a *domain.Address) string { return a.Street })),
		text(page(pg, "NrDomu"+suffix), field(func(a *domain.Address) string { return a.HouseNumber })),
		text(page(pg, "NrLokalu"+suffix), field(func(a *domain.Address) string { return a.UnitNumber })),
		text(page(pg, "KodPocztowy"+suffix), field(func(a *domain.Address) string { return a.PostalCode })),
		text(page(pg, "Miejscowosc"+suffix), field(func(a *domain.Address) string { return a.City })),
		dropdown(page(pg, "Kraj"+suffix), field(func(a *domain.Address) string { return a.Country })),
		text(page(pg, "Telefon"+suffix), field(func(a *domain.Address) string { return a.Phone })),
	}
}

func correspondenceEntries() []Entry {
	kind := func(k domain.CorrespondenceKind) CheckExtractor {
		return func(s *domain.CaseSnapshot) encoders.CheckState {
			if s.Addresses.Correspondence != nil && s.Addresses.Correspondence.Kind == k {
				return encoders.Checked
			}
			return encoders.Unchecked
		}
	}
	corr := func(fn func(c *domain.Correspondence) string) TextExtractor {
		return func(s *domain.CaseSnapshot) string {
			c := s.Addresses.Correspondence
			if c == nil {
				return ""
			}
			return fn(c)
		}
	}

	entries := []Entry{
		check(page(2, "KorespAdres"), kind(domain.CorrespondenceAddress)),
		check(page(2, "KorespPosteRestante"), kind(domain.CorrespondencePosteRestant)),
		check(page(2, "KorespSkrytka"), kind(domain.CorrespondencePOBox)),
		check(page(2, "KorespSkrytkaTypP"), kind(domain.CorrespondencePOBoxTypeP)),

		text(page(2, "KorespNrSkrytki"), corr(func(c *domain.Correspondence) string {
			return c.BoxNumber
		})),
		text(page(2, "KorespKodPocztowy"), corr(func(c *domain.Correspondence) string {
			if c.Kind == domain.CorrespondenceAddress {
				return ""
			}
			return c.PostalCode
		})),
		text(page(2, "KorespUrzad"), corr(func(c *domain.Correspondence) string {
			return c.OfficeName
		})),
	}

	// The plain-address variant fills a regular address block.
	entries = append(entries, addressBlock(2, "Koresp", func(s *domain.CaseSnapshot) *domain.Address {
		c := s.Addresses.Correspondence
		if c == nil || c.Kind != domain.CorrespondenceAddress {
			return nil
		}
		return c.Address
	})...)

	return entries
}

func businessEntries() []Entry {
	return []Entry{
		text(page(2, "Nip"), func(s *domain.CaseSnapshot) string {
			return s.Business.NIP
		}),
		text(page(2, "Regon"), func(s *domain.CaseSnapshot) string {
			return s.Business.REGON
		}),
		text(page(2, "Pkd"), func(s *domain.CaseSnapshot) string {
			return s.Business.PKDCode
		}),
		text(page(2, "ZakresDzialalnosci"), func(s *domain.CaseSnapshot) string {
			return s.Business.ActivityScope
		}),
	}
}

func accidentEntries() []Entry {
	element := func(name string, get func(a *domain.AccidentData) *domain.LegalElement) []Entry {
		return []Entry{
			check(page(3, name), checked(func(s *domain.CaseSnapshot) *bool {
				return get(&s.Accident).Confirmed
			})),
			text(page(3, name+"Kwalifikacja"), func(s *domain.CaseSnapshot) string {
				return get(&s.Accident).Classification
			}),
			text(page(3, name+"Opis"), func(s *domain.CaseSnapshot) string {
				return get(&s.Accident).Description
			}),
		}
	}

	entries := []Entry{
		date(page(3, "Datawyp"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Date
		}),
		text(page(3, "GodzWyp"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Time
		}),
		text(page(3, "MiejsceWyp"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Place
		}),
		text(page(3, "OpisWyp"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Description
		}),
		text(page(3, "OpisUrazow"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Injuries
		}),
		// Injury classification is the one dropdown block on the page;
		// the template enumerates the statutory injury categories.
		dropdown(page(3, "RodzajUrazu"), func(s *domain.CaseSnapshot) string {
			return s.Accident.Injury.Classification
		}),
	}

	entries = append(entries, element("Naglosc", func(a *domain.AccidentData) *domain.LegalElement {
		return &a.Suddenness
	})...)
	entries = append(entries, element("PrzyczynaZewnetrzna", func(a *domain.AccidentData) *domain.LegalElement {
		return &a.ExternalCause
	})...)
	entries = append(entries, element("Uraz", func(a *domain.AccidentData) *domain.LegalElement {
		return &a.Injury
	})...)
	entries = append(entries, element("ZwiazekZPraca", func(a *domain.AccidentData) *domain.LegalElement {
		return &a.WorkRelation
	})...)

	entries = append(entries,
		check(page(3, "PomocUdzielona"), checked(func(s *domain.CaseSnapshot) *bool {
			if s.Accident.FirstAid == nil {
				return nil
			}
			return s.Accident.FirstAid.Given
		})),
		text(page(3, "PomocPlacowka"), func(s *domain.CaseSnapshot) string {
			if s.Accident.FirstAid == nil {
				return ""
			}
			return s.Accident.FirstAid.FacilityName
		}),
		text(page(3, "PomocOpis"), func(s *domain.CaseSnapshot) string {
			if s.Accident.FirstAid == nil {
				return ""
			}
			return s.Accident.FirstAid.Details
		}),

		check(page(3, "PostepowanieProwadzone"), checked(func(s *domain.CaseSnapshot) *bool {
			if s.Accident.Proceedings == nil {
				return nil
			}
			return s.Accident.Proceedings.Conducted
		})),
		text(page(3, "OrganProwadzacy"), func(s *domain.CaseSnapshot) string {
			if s.Accident.Proceedings == nil {
				return ""
			}
			return s.Accident.Proceedings.AuthorityName
		}),
		text(page(3, "SygnaturaAkt"), func(s *domain.CaseSnapshot) string {
			if s.Accident.Proceedings == nil {
				return ""
			}
			return s.Accident.Proceedings.CaseNumber
		}),

		check(page(3, "MaszynyUdzial"), checked(func(s *domain.CaseSnapshot) *bool {
			if s.Accident.Machinery == nil {
				return nil
			}
			return s.Accident.Machinery.Involved
		})),
		text(page(3, "MaszynyOpis"), func(s *domain.CaseSnapshot) string {
			if s.Accident.Machinery == nil {
				return ""
			}
			return s.Accident.Machinery.Description
		}),
		text(page(3, "MaszynyStan"), func(s *domain.CaseSnapshot) string {
			if s.Accident.Machinery == nil {
				return ""
			}
			return s.Accident.Machinery.Condition
		}),
	)

	return entries
}

func representativeEntries() []Entry {
	rep := func(fn func(r *domain.RepresentativeData) string) TextExtractor {
		return func(s *domain.CaseSnapshot) string {
			if s.Representative == nil {
				return ""
			}
			return fn(s.Representative)
		}
	}

	entries := []Entry{
		text(page(4, "PelnomocnikPesel"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.PESEL
		})),
		text(page(4, "PelnomocnikDokument"), rep(func(r *domain.RepresentativeData) string {
			d := r.Personal.IdentityDocument
			return encoders.Compose(" ",
				encoders.Capitalize(encoders.Transliterate(d.Kind)),
				d.Series,
				d.Number,
			)
		})),
		text(page(4, "PelnomocnikImie"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.GivenName
		})),
		text(page(4, "PelnomocnikNazwisko"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.FamilyName
		})),
		date(page(4, "PelnomocnikDataUrodzenia"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.BirthDate
		})),
		text(page(4, "PelnomocnikTelefon"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.Phone
		})),
		text(page(4, "PelnomocnikEmail"), rep(func(r *domain.RepresentativeData) string {
			return r.Personal.Email
		})),
	}

	entries = append(entries, addressBlock(4, "Pelnomocnik", func(s *domain.CaseSnapshot) *domain.Address {
		if s.Representative == nil {
			return nil
		}
		return &s.Representative.Addresses.Residential
	})...)

	return entries
}
