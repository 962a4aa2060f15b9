package formfiller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentAdapter = (*Client)(nil)
var _ driven.FormDocument = (*document)(nil)

// Client implements driven.DocumentAdapter against the form-filler
// service, which parses AcroForm templates and serialises filled copies.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds form-filler connection configuration
type Config struct {
	// BaseURL is the form-filler endpoint (e.g., http://localhost:8090)
	BaseURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new form-filler client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// parseResponse is what the service returns for a parsed template
type parseResponse struct {
	DocumentID string             `json:"document_id"`
	Fields     []domain.FormField `json:"fields"`
}

// fieldWrite is one buffered field mutation
type fieldWrite struct {
	FieldID string `json:"field_id"`
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Option  string `json:"option,omitempty"`
}

// fillRequest is the batch sent on Save
type fillRequest struct {
	Writes []fieldWrite `json:"writes"`
}

// Load parses template bytes into a writable document.
// The service parses once and returns the field catalog; all writes are
// buffered client-side and sent as one batch on Save.
func (c *Client) Load(ctx context.Context, templateID string, data []byte) (driven.FormDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: template %s is empty", domain.ErrTemplateCorrupt, templateID)
	}

	url := fmt.Sprintf("%s/v1/documents", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-Template-ID", templateID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("form-filler unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateCorrupt, strings.TrimSpace(string(respBody)))
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("form-filler parse failed: %s - %s", resp.Status, string(respBody))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: bad parse response: %v", domain.ErrTemplateCorrupt, err)
	}

	fields := make(map[string]domain.FormField, len(parsed.Fields))
	for _, f := range parsed.Fields {
		fields[f.ID] = f
	}

	return &document{
		client:     c,
		documentID: parsed.DocumentID,
		fields:     parsed.Fields,
		byID:       fields,
	}, nil
}

// document is one loaded template instance. Writes are validated and
// buffered locally so a rejected value never costs a round trip.
type document struct {
	client     *Client
	documentID string
	fields     []domain.FormField
	byID       map[string]domain.FormField
	writes     []fieldWrite
}

// Fields reports every fillable field the template actually has.
func (d *document) Fields() []domain.FormField {
	out := make([]domain.FormField, len(d.fields))
	copy(out, d.fields)
	return out
}

// SetText writes a text field.
func (d *document) SetText(fieldID, value string) error {
	field, ok := d.byID[fieldID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrFieldNotFound, fieldID)
	}
	if field.Kind != domain.FieldText {
		return fmt.Errorf("%w: %s is %s, not text", domain.ErrKindMismatch, fieldID, field.Kind)
	}

	// The printed forms use a Central European single-byte encoding, so
	// reject code points that cannot survive serialisation up front.
	for _, r := range value {
		if !encodable(r) {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedCharset, r)
		}
	}

	d.writes = append(d.writes, fieldWrite{
		FieldID: fieldID,
		Kind:    string(domain.FieldText),
		Text:    value,
	})
	return nil
}

// SetChecked sets a checkbox to a definite state.
func (d *document) SetChecked(fieldID string, checked bool) error {
	field, ok := d.byID[fieldID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrFieldNotFound, fieldID)
	}
	if field.Kind != domain.FieldCheckbox {
		return fmt.Errorf("%w: %s is %s, not checkbox", domain.ErrKindMismatch, fieldID, field.Kind)
	}

	d.writes = append(d.writes, fieldWrite{
		FieldID: fieldID,
		Kind:    string(domain.FieldCheckbox),
		Checked: checked,
	})
	return nil
}

// Select picks a dropdown value.
func (d *document) Select(fieldID, value string) error {
	field, ok := d.byID[fieldID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrFieldNotFound, fieldID)
	}
	if field.Kind != domain.FieldDropdown {
		return fmt.Errorf("%w: %s is %s, not dropdown", domain.ErrKindMismatch, fieldID, field.Kind)
	}
	if !field.HasOption(value) {
		return fmt.Errorf("%w: %q not in options of %s", domain.ErrOptionNotAllowed, value, fieldID)
	}

	d.writes = append(d.writes, fieldWrite{
		FieldID: fieldID,
		Kind:    string(domain.FieldDropdown),
		Option:  value,
	})
	return nil
}

// Save sends the buffered writes and returns the filled document bytes.
func (d *document) Save(ctx context.Context) ([]byte, error) {
	body, err := json.Marshal(fillRequest{Writes: d.writes})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/documents/%s/fill", d.client.baseURL, d.documentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("form-filler unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("form-filler fill failed: %s - %s", resp.Status, string(respBody))
	}

	return io.ReadAll(resp.Body)
}

// HealthCheck verifies the form-filler service is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1/health", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("form-filler unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("form-filler unhealthy: %s", resp.Status)
	}

	return nil
}
