package fieldmap

import (
	"fmt"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
)

// Template capacities for repeated entities. The notification template
// prints a fixed number of blocks; snapshot entries beyond the capacity
// have no field to land in and are dropped without signal.
const (
	WitnessCapacity    = 3
	CommitmentCapacity = 4
)

// positional builds the id of the n-th block of a repeated section,
// 1-based as printed on the form.
func positional(pg int, name string, n int) string {
	return page(pg, fmt.Sprintf("%s%d", name, n))
}

// witness returns the i-th witness (0-based) or nil when the snapshot has
// fewer entries.
func witness(s *domain.CaseSnapshot, i int) *domain.Witness {
	if i < 0 || i >= len(s.Witnesses) {
		return nil
	}
	return &s.Witnesses[i]
}

func witnessEntries() []Entry {
	var entries []Entry
	for n := 1; n <= WitnessCapacity; n++ {
		i := n - 1
		field := func(fn func(w *domain.Witness) string) TextExtractor {
			return func(s *domain.CaseSnapshot) string {
				w := witness(s, i)
				if w == nil {
					return ""
				}
				return fn(w)
			}
		}

		entries = append(entries,
			text(positional(3, "SwiadekImieNazwisko", n), field(func(w *domain.Witness) string {
				return w.Name
			})),
			text(positional(3, "SwiadekAdres", n), field(func(w *domain.Witness) string {
				return w.Address
			})),
			text(positional(3, "SwiadekKraj", n), field(func(w *domain.Witness) string {
				return w.Country
			})),
			text(positional(3, "SwiadekTelefon", n), field(func(w *domain.Witness) string {
				return w.Phone
			})),
		)
	}
	return entries
}

func attachmentEntries() []Entry {
	flag := func(fn func(a *domain.Attachments) *bool) CheckExtractor {
		return checked(func(s *domain.CaseSnapshot) *bool {
			return fn(&s.Attachments)
		})
	}
	delivery := func(m domain.DeliveryMethod) CheckExtractor {
		return func(s *domain.CaseSnapshot) encoders.CheckState {
			if s.Attachments.DeliveryMethod == m {
				return encoders.Checked
			}
			return encoders.Unchecked
		}
	}

	entries := []Entry{
		check(page(4, "ZalDokumentacjaMedyczna"), flag(func(a *domain.Attachments) *bool {
			return a.MedicalRecord
		})),
		check(page(4, "ZalPostanowienieProkuratury"), flag(func(a *domain.Attachments) *bool {
			return a.ProsecutorDecision
		})),
		check(page(4, "ZalAktZgonu"), flag(func(a *domain.Attachments) *bool {
			return a.DeathCertificate
		})),
		check(page(4, "ZalPelnomocnictwo"), flag(func(a *domain.Attachments) *bool {
			return a.PowerOfAttorney
		})),
		check(page(4, "ZalInne"), flag(func(a *domain.Attachments) *bool {
			return a.Other
		})),
		text(page(4, "ZalInneOpis"), func(s *domain.CaseSnapshot) string {
			return s.Attachments.OtherDescription
		}),

		check(page(4, "OdbiorOsobisty"), delivery(domain.DeliveryInPerson)),
		check(page(4, "OdbiorPoczta"), delivery(domain.DeliveryPost)),
		check(page(4, "OdbiorPUE"), delivery(domain.DeliveryPUE)),
	}

	for n := 1; n <= CommitmentCapacity; n++ {
		i := n - 1
		entries = append(entries, check(positional(4, "Zobowiazanie", n),
			checked(func(s *domain.CaseSnapshot) *bool {
				if i >= len(s.Attachments.Commitments) {
					return nil
				}
				return s.Attachments.Commitments[i]
			})))
	}

	return entries
}
