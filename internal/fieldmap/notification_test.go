package fieldmap

import (
	"testing"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/encoders"
)

func lookupText(t *testing.T, r *Registry, id string) TextExtractor {
	t.Helper()
	e, ok := r.Lookup(id)
	if !ok {
		t.Fatalf("no entry for %s", id)
	}
	if e.Text == nil {
		t.Fatalf("entry %s has no text extractor", id)
	}
	return e.Text
}

func lookupCheck(t *testing.T, r *Registry, id string) CheckExtractor {
	t.Helper()
	e, ok := r.Lookup(id)
	if !ok {
		t.Fatalf("no entry for %s", id)
	}
	if e.Check == nil {
		t.Fatalf("entry %s has no check extractor", id)
	}
	return e.Check
}

func TestNotification_BuildsWithoutDuplicates(t *testing.T) {
	// Notification panics on an invalid table; reaching here is the test.
	r := Notification()
	if r.Len() == 0 {
		t.Fatal("empty registry")
	}
}

func TestNotification_IdentityDocumentComposite(t *testing.T) {
	r := Notification()
	snap := &domain.CaseSnapshot{}
	snap.Personal.IdentityDocument = domain.IdentityDocument{
		Kind:   "dowód osobisty",
		Series: "AB",
		Number: "123456",
	}

	got := lookupText(t, r, "topmostSubform[0].Page1[0].DokumentTozsamosci[0]")(snap)
	if got != "Dowod osobisty AB 123456" {
		t.Errorf("got %q, want %q", got, "Dowod osobisty AB 123456")
	}

	// No stray separators when parts are missing.
	snap.Personal.IdentityDocument = domain.IdentityDocument{Kind: "paszport", Number: "X999"}
	got = lookupText(t, r, "topmostSubform[0].Page1[0].DokumentTozsamosci[0]")(snap)
	if got != "Paszport X999" {
		t.Errorf("got %q, want %q", got, "Paszport X999")
	}
}

func TestNotification_AccidentDate(t *testing.T) {
	r := Notification()
	snap := &domain.CaseSnapshot{}
	snap.Accident.Date = "2024-03-05"

	got := lookupText(t, r, "topmostSubform[0].Page3[0].Datawyp[0]")(snap)
	if got != "05032024" {
		t.Errorf("got %q, want 05032024", got)
	}
}

func TestNotification_AbsenceYieldsEmpty(t *testing.T) {
	r := Notification()
	snap := &domain.CaseSnapshot{} // nothing populated

	// Every text extractor must tolerate a bare snapshot.
	for _, id := range r.FieldIDs() {
		e, _ := r.Lookup(id)
		switch e.Kind {
		case domain.FieldText, domain.FieldDropdown:
			if got := e.Text(snap); got != "" {
				t.Errorf("field %s produced %q from an empty snapshot", id, got)
			}
		case domain.FieldCheckbox:
			if got := e.Check(snap); got != encoders.Unchecked {
				t.Errorf("field %s resolved %v from an empty snapshot", id, got)
			}
		}
	}
}

func TestNotification_RepresentativeOptional(t *testing.T) {
	r := Notification()

	snap := &domain.CaseSnapshot{
		Representative: &domain.RepresentativeData{
			Personal: domain.PersonalData{GivenName: "Anna", FamilyName: "Kowalska"},
		},
	}

	got := lookupText(t, r, "topmostSubform[0].Page4[0].PelnomocnikImie[0]")(snap)
	if got != "Anna" {
		t.Errorf("got %q, want Anna", got)
	}

	snap.Representative = nil
	got = lookupText(t, r, "topmostSubform[0].Page4[0].PelnomocnikImie[0]")(snap)
	if got != "" {
		t.Errorf("got %q, want empty for absent representative", got)
	}
}

func TestNotification_WitnessCapacity(t *testing.T) {
	r := Notification()

	snap := &domain.CaseSnapshot{
		Witnesses: []domain.Witness{
			{Name: "W1"}, {Name: "W2"}, {Name: "W3"}, {Name: "W4"}, {Name: "W5"},
		},
	}

	// Exactly the first three witnesses are representable.
	for n := 1; n <= WitnessCapacity; n++ {
		id := positional(3, "SwiadekImieNazwisko", n)
		got := lookupText(t, r, id)(snap)
		want := snap.Witnesses[n-1].Name
		if got != want {
			t.Errorf("witness %d: got %q, want %q", n, got, want)
		}
	}

	// No entry exists for blocks beyond the template capacity.
	if _, ok := r.Lookup(positional(3, "SwiadekImieNazwisko", WitnessCapacity+1)); ok {
		t.Error("unexpected mapping beyond witness capacity")
	}
}

func TestNotification_WitnessFewerThanCapacity(t *testing.T) {
	r := Notification()
	snap := &domain.CaseSnapshot{
		Witnesses: []domain.Witness{{Name: "Only One", Phone: "600100200"}},
	}

	if got := lookupText(t, r, positional(3, "SwiadekImieNazwisko", 1))(snap); got != "Only One" {
		t.Errorf("got %q", got)
	}
	if got := lookupText(t, r, positional(3, "SwiadekImieNazwisko", 2))(snap); got != "" {
		t.Errorf("expected empty second block, got %q", got)
	}
	if got := lookupText(t, r, positional(3, "SwiadekTelefon", 3))(snap); got != "" {
		t.Errorf("expected empty third block, got %q", got)
	}
}

func TestNotification_CorrespondenceVariant(t *testing.T) {
	r := Notification()

	snap := &domain.CaseSnapshot{}
	snap.Addresses.Correspondence = &domain.Correspondence{
		Kind:       domain.CorrespondencePOBox,
		BoxNumber:  "skr. 45",
		PostalCode: "00-950",
		OfficeName: "UP Warszawa 1",
	}

	if got := lookupCheck(t, r, "topmostSubform[0].Page2[0].KorespSkrytka[0]")(snap); got != encoders.Checked {
		t.Error("expected P.O. box variant checked")
	}
	if got := lookupCheck(t, r, "topmostSubform[0].Page2[0].KorespAdres[0]")(snap); got != encoders.Unchecked {
		t.Error("expected plain-address variant unchecked")
	}
	if got := lookupText(t, r, "topmostSubform[0].Page2[0].KorespNrSkrytki[0]")(snap); got != "skr. 45" {
		t.Errorf("got %q", got)
	}

	// Plain-address variant: box fields stay empty, address block fills.
	snap.Addresses.Correspondence = &domain.Correspondence{
		Kind:    domain.CorrespondenceAddress,
		Address: &domain.Address{City: "Kraków", PostalCode: "30-001"},
	}
	if got := lookupText(t, r, "topmostSubform[0].Page2[0].KorespKodPocztowy[0]")(snap); got != "" {
		t.Errorf("expected empty box postal code for plain address, got %q", got)
	}
	if got := lookupText(t, r, "topmostSubform[0].Page2[0].MiejscowoscKoresp[0]")(snap); got != "Kraków" {
		t.Errorf("got %q", got)
	}
}

func TestNotification_DeliveryAndCommitments(t *testing.T) {
	r := Notification()
	yes := true

	snap := &domain.CaseSnapshot{}
	snap.Attachments.DeliveryMethod = domain.DeliveryPost
	snap.Attachments.Commitments = []*bool{&yes, nil}

	if got := lookupCheck(t, r, "topmostSubform[0].Page4[0].OdbiorPoczta[0]")(snap); got != encoders.Checked {
		t.Error("expected post delivery checked")
	}
	if got := lookupCheck(t, r, "topmostSubform[0].Page4[0].OdbiorOsobisty[0]")(snap); got != encoders.Unchecked {
		t.Error("expected in-person delivery unchecked")
	}

	if got := lookupCheck(t, r, positional(4, "Zobowiazanie", 1))(snap); got != encoders.Checked {
		t.Error("expected first commitment checked")
	}
	// Unset and out-of-range commitments resolve unchecked.
	if got := lookupCheck(t, r, positional(4, "Zobowiazanie", 2))(snap); got != encoders.Unchecked {
		t.Error("expected second commitment unchecked")
	}
	if got := lookupCheck(t, r, positional(4, "Zobowiazanie", CommitmentCapacity))(snap); got != encoders.Unchecked {
		t.Error("expected last commitment unchecked")
	}
}
