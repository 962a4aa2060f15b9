package formfiller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// newTestServer serves the parse and fill endpoints with a fixed catalog.
func newTestServer(t *testing.T) (*httptest.Server, *fillRequest) {
	t.Helper()

	var lastFill fillRequest

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/documents", func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		if bytes.Contains(body.Bytes(), []byte("garbage")) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte("not an AcroForm"))
			return
		}
		resp := parseResponse{
			DocumentID: "doc-1",
			Fields: []domain.FormField{
				{ID: "Imie[0]", Kind: domain.FieldText},
				{ID: "Nazwisko[0]", Kind: domain.FieldText, MaxLength: 10},
				{ID: "Kraj[0]", Kind: domain.FieldDropdown, Options: []string{"Polska", "Niemcy"}},
				{ID: "Maszyny[0]", Kind: domain.FieldCheckbox},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("POST /v1/documents/{id}/fill", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&lastFill); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-filled%"))
	})
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, &lastFill
}

func TestLoad_ReturnsFieldCatalog(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	doc, err := client.Load(context.Background(), "zus-not-1", []byte("%PDF%"))
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	fields := doc.Fields()
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
	if fields[1].MaxLength != 10 {
		t.Errorf("expected MaxLength 10, got %d", fields[1].MaxLength)
	}
	if len(fields[2].Options) != 2 {
		t.Errorf("expected 2 dropdown options, got %d", len(fields[2].Options))
	}
}

func TestLoad_EmptyTemplate(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	_, err := client.Load(context.Background(), "zus-not-1", nil)
	if !errors.Is(err, domain.ErrTemplateCorrupt) {
		t.Errorf("expected ErrTemplateCorrupt, got %v", err)
	}
}

func TestLoad_UnparseableTemplate(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	_, err := client.Load(context.Background(), "zus-not-1", []byte("garbage"))
	if !errors.Is(err, domain.ErrTemplateCorrupt) {
		t.Errorf("expected ErrTemplateCorrupt, got %v", err)
	}
}

func TestSetText_Validation(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	doc, err := client.Load(context.Background(), "zus-not-1", []byte("%PDF%"))
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	tests := []struct {
		name    string
		fieldID string
		value   string
		wantErr error
	}{
		{"valid ascii", "Imie[0]", "Jan", nil},
		{"polish diacritics pass", "Imie[0]", "Michał Żółć", nil},
		{"cyrillic rejected", "Imie[0]", "Иван", domain.ErrUnsupportedCharset},
		{"unknown field", "Nieistnieje[0]", "x", domain.ErrFieldNotFound},
		{"checkbox as text", "Maszyny[0]", "x", domain.ErrKindMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := doc.SetText(tt.fieldID, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSelect_RejectsUnknownOption(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	doc, _ := client.Load(context.Background(), "zus-not-1", []byte("%PDF%"))

	if err := doc.Select("Kraj[0]", "Polska"); err != nil {
		t.Errorf("expected valid option to pass, got %v", err)
	}
	if err := doc.Select("Kraj[0]", "Atlantyda"); !errors.Is(err, domain.ErrOptionNotAllowed) {
		t.Errorf("expected ErrOptionNotAllowed, got %v", err)
	}
	if err := doc.Select("Imie[0]", "Polska"); !errors.Is(err, domain.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestSave_SendsBufferedWrites(t *testing.T) {
	srv, lastFill := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	doc, _ := client.Load(context.Background(), "zus-not-1", []byte("%PDF%"))

	if err := doc.SetText("Imie[0]", "Jan"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := doc.SetChecked("Maszyny[0]", true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	if err := doc.Select("Kraj[0]", "Niemcy"); err != nil {
		t.Fatalf("select: %v", err)
	}

	out, err := doc.Save(context.Background())
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if string(out) != "%PDF-filled%" {
		t.Errorf("expected filled document bytes, got %q", out)
	}

	if len(lastFill.Writes) != 3 {
		t.Fatalf("expected 3 writes sent, got %d", len(lastFill.Writes))
	}
	if lastFill.Writes[0].Text != "Jan" {
		t.Errorf("expected text write Jan, got %q", lastFill.Writes[0].Text)
	}
	if !lastFill.Writes[1].Checked {
		t.Error("expected checkbox write to be checked")
	}
	if lastFill.Writes[2].Option != "Niemcy" {
		t.Errorf("expected option Niemcy, got %q", lastFill.Writes[2].Option)
	}
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewClient(DefaultConfig(srv.URL))

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	srv.Close()

	if err := client.HealthCheck(context.Background()); err == nil {
		t.Error("expected error after server shutdown")
	}
}
