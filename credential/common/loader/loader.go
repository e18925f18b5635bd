// Package loader resolves IRIs to JSON-LD documents for canonicalization and
// verification method lookup.
//
// A Loader serves, in order: documents registered by the caller, the embedded
// W3C contexts, did:key documents derived from the key itself, DIDs handed to
// an optional DIDResolver, and remote contexts when remote fetching is enabled.
// Successful results are cached; the cache is safe for concurrent use.
package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/sync/singleflight"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
)

// ErrDocumentNotFound is returned when no source knows the requested IRI.
var ErrDocumentNotFound = fmt.Errorf("document not found: %w", cerrdefs.ErrNotFound)

// DocumentLoader resolves an IRI to a parsed JSON-LD document.
//
// Implementations return an error matching ErrDocumentNotFound for unknown IRIs
// and errdefs.ErrLoader for transport failures.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, iri string) (*ld.RemoteDocument, error)
}

// DIDResolver resolves a DID (without fragment) to its DID document.
type DIDResolver interface {
	Resolve(ctx context.Context, did string) (map[string]interface{}, error)
}

// Option configures a Loader.
type Option func(*Loader) error

// WithDocument registers a static document under iri. doc may be a JSON
// string, raw JSON bytes or an already decoded value.
func WithDocument(iri string, doc interface{}) Option {
	return func(l *Loader) error {
		return l.AddDocument(iri, doc)
	}
}

// WithDIDResolver sets the resolver used for DIDs other than did:key.
func WithDIDResolver(r DIDResolver) Option {
	return func(l *Loader) error {
		l.resolver = r
		return nil
	}
}

// WithRemoteContexts enables fetching http(s) documents that are not
// registered or embedded. A nil client uses http.DefaultClient.
func WithRemoteContexts(client *http.Client) Option {
	return func(l *Loader) error {
		l.remote = ld.NewDefaultDocumentLoader(client)
		return nil
	}
}

// Loader is the default DocumentLoader.
type Loader struct {
	mu     sync.RWMutex
	static map[string]*ld.RemoteDocument
	cache  map[string]*ld.RemoteDocument
	group  singleflight.Group

	resolver DIDResolver
	remote   ld.DocumentLoader
}

// New creates a Loader preloaded with the embedded contexts.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		static: make(map[string]*ld.RemoteDocument, len(embeddedContexts)),
		cache:  make(map[string]*ld.RemoteDocument),
	}
	for iri, body := range embeddedContexts {
		if err := l.AddDocument(iri, body); err != nil {
			return nil, fmt.Errorf("failed to load embedded context %s: %w", iri, err)
		}
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// AddDocument registers doc under iri, replacing any previous registration.
func (l *Loader) AddDocument(iri string, doc interface{}) error {
	parsed, err := parseDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to parse document %s: %w", iri, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.static[iri] = &ld.RemoteDocument{DocumentURL: iri, Document: parsed}
	delete(l.cache, iri)
	return nil
}

// LoadDocument resolves iri. A fragment is ignored for lookup; the returned
// document is the one the fragment points into. Callers get their own copy
// and may modify it without affecting the cache.
func (l *Loader) LoadDocument(ctx context.Context, iri string) (*ld.RemoteDocument, error) {
	key, _, _ := strings.Cut(iri, "#")
	if key == "" {
		return nil, fmt.Errorf("empty IRI %q: %w", iri, ErrDocumentNotFound)
	}

	l.mu.RLock()
	rd, ok := l.static[key]
	if !ok {
		rd, ok = l.cache[key]
	}
	l.mu.RUnlock()
	if ok {
		return copyDocument(rd), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := l.group.DoChan(key, func() (interface{}, error) {
		// detached so one caller's cancellation does not fail the others
		rd, err := l.fetch(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = rd
		l.mu.Unlock()
		return rd, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyDocument(res.Val.(*ld.RemoteDocument)), nil
	}
}

func copyDocument(rd *ld.RemoteDocument) *ld.RemoteDocument {
	c := *rd
	c.Document = jsonmap.DeepCopyValue(rd.Document)
	return &c
}

func (l *Loader) fetch(ctx context.Context, iri string) (*ld.RemoteDocument, error) {
	logger := log.G(ctx).WithField("iri", iri)

	switch {
	case crypto.IsDIDKey(iri):
		doc, err := DIDKeyDocument(iri)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %v: %w", iri, err, ErrDocumentNotFound)
		}
		return &ld.RemoteDocument{DocumentURL: iri, Document: doc}, nil

	case strings.HasPrefix(iri, "did:"):
		if l.resolver == nil {
			return nil, fmt.Errorf("no DID resolver configured for %s: %w", iri, ErrDocumentNotFound)
		}
		logger.Debug("resolving DID")
		doc, err := l.resolver.Resolve(ctx, iri)
		if err != nil {
			return nil, err
		}
		return &ld.RemoteDocument{DocumentURL: iri, Document: doc}, nil

	case l.remote != nil && (strings.HasPrefix(iri, "https://") || strings.HasPrefix(iri, "http://")):
		logger.Debug("fetching remote document")
		rd, err := l.remote.LoadDocument(iri)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrLoader, "failed to fetch "+iri, err)
		}
		return rd, nil
	}

	return nil, fmt.Errorf("%s: %w", iri, ErrDocumentNotFound)
}

func parseDocument(doc interface{}) (interface{}, error) {
	switch d := doc.(type) {
	case string:
		return ld.DocumentFromReader(strings.NewReader(d))
	case []byte:
		return ld.DocumentFromReader(strings.NewReader(string(d)))
	case nil:
		return nil, fmt.Errorf("document is nil")
	default:
		return d, nil
	}
}

var defaultLoader = sync.OnceValue(func() *Loader {
	l, err := New()
	if err != nil {
		panic(err)
	}
	return l
})

// Default returns a process wide Loader serving only the embedded contexts
// and did:key documents.
func Default() *Loader {
	return defaultLoader()
}
