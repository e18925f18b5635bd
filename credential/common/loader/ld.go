package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/piprate/json-gold/ld"
)

// LDAdapter exposes a DocumentLoader through the json-gold ld.DocumentLoader
// interface, binding it to one context. It remembers the first failure so the
// caller can tell loader errors apart from processing errors.
type LDAdapter struct {
	ctx    context.Context
	loader DocumentLoader

	mu  sync.Mutex
	err error
}

// ForProcessor binds l to ctx for use by json-gold.
func ForProcessor(ctx context.Context, l DocumentLoader) *LDAdapter {
	return &LDAdapter{ctx: ctx, loader: l}
}

// LoadDocument implements ld.DocumentLoader.
func (a *LDAdapter) LoadDocument(u string) (*ld.RemoteDocument, error) {
	rd, err := a.loader.LoadDocument(a.ctx, u)
	if err != nil {
		a.mu.Lock()
		if a.err == nil {
			a.err = err
		}
		a.mu.Unlock()
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	return rd, nil
}

// Err returns the first error returned by the wrapped loader.
func (a *LDAdapter) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// IsNotFound reports whether err means the loader does not know the IRI.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}
