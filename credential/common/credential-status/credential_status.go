// Package credentialstatus checks credentialStatus entries against published
// bitstring status lists.
package credentialstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/util"
)

// StatusPurposeRevocation is the only status purpose that invalidates a credential.
const StatusPurposeRevocation = "revocation"

// Client fetches status list credentials over HTTP.
type Client struct {
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// NewClient creates a status list client with a 10 second timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStatusListCredential fetches and parses the status list credential at
// url. Both the bare credential and a {"data": credential} envelope are accepted.
func (c *Client) FetchStatusListCredential(ctx context.Context, url string) (*StatusListCredential, error) {
	if url == "" {
		return nil, fmt.Errorf("statusListCredential URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to call status list credential endpoint", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "status list credential endpoint returned "+resp.Status, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to read status list credential", err)
	}

	var envelope StatusListCredentialResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	var cred StatusListCredential
	if err := json.Unmarshal(body, &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status list credential: %w", err)
	}
	return &cred, nil
}

// Check reports whether the credential referenced by status is revoked.
// Entries with another status purpose are never revoked.
func (c *Client) Check(ctx context.Context, status Status) (bool, error) {
	if status.StatusPurpose != "" && status.StatusPurpose != StatusPurposeRevocation {
		return false, nil
	}
	position, err := strconv.Atoi(status.StatusListIndex)
	if err != nil {
		return false, fmt.Errorf("invalid statusListIndex %q: %w", status.StatusListIndex, err)
	}

	cred, err := c.FetchStatusListCredential(ctx, status.StatusListCredential)
	if err != nil {
		return false, err
	}
	return IsRevoked(position, cred.CredentialSubject)
}

// IsRevoked reads the bit at position of a revocation list. Bits are counted
// from the least significant bit of each byte.
func IsRevoked(position int, subject StatusListCredentialSubject) (bool, error) {
	if subject.StatusPurpose != StatusPurposeRevocation {
		return false, nil
	}

	bits, err := util.DecompressFromBase64URL(subject.EncodedList)
	if err != nil {
		return false, fmt.Errorf("failed to decode status list: %w", err)
	}

	if position < 0 || position/8 >= len(bits) {
		return false, fmt.Errorf("status list index %d out of range for %d entries", position, len(bits)*8)
	}
	return (bits[position/8]>>(position%8))&1 == 1, nil
}
