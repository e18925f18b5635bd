package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

const defaultResolverTimeout = 10 * time.Second

// Resolver is a client for resolving DIDs from a specific endpoint.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient replaces the resolver's HTTP client.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithTimeout sets the request timeout of the default client.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.client.Timeout = timeout
	}
}

// NewResolver creates a new DID resolver with a given base URL.
func NewResolver(baseURL string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout:   defaultResolverTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches the DID document of did from {baseURL}/{did}. Both a bare
// DID document and a DID resolution result carrying "didDocument" are accepted.
func (r *Resolver) Resolve(ctx context.Context, did string) (map[string]interface{}, error) {
	did, _, _ = strings.Cut(did, "#")
	if !strings.HasPrefix(did, "did:") {
		return nil, fmt.Errorf("%q is not a DID: %w", did, ErrDocumentNotFound)
	}

	apiURL := r.baseURL + "/" + url.PathEscape(did)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to build DID resolver request", err)
	}
	req.Header.Set("Accept", "application/did+ld+json, application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to make HTTP request to DID resolver", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("DID %s: resolver returned %s: %w", did, resp.Status, ErrDocumentNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, errdefs.Wrap(errdefs.ErrLoader, "DID resolver API returned non-200 status: "+resp.Status, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to read response body from DID resolver", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to unmarshal DID document JSON", err)
	}

	if inner, ok := doc["didDocument"].(map[string]interface{}); ok {
		doc = inner
	}
	if id, _ := doc["id"].(string); id != did {
		return nil, fmt.Errorf("resolver returned document %q for DID %s: %w", id, did, ErrDocumentNotFound)
	}

	return doc, nil
}
