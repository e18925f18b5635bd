package upgrade

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/containerd/log"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
	"github.com/pilacorp/go-ldproof/storage"
)

// ResignStep returns an update that signs every stored document of the given
// record types again with s. An existing proof of the same type is replaced;
// proofs of other types are kept.
//
// The documents of a record type are signed outside any database transaction
// and written back together, so a failure leaves that type unchanged.
func ResignStep(s suite.Suite, p purpose.Purpose, kp keypair.KeyPair, l loader.DocumentLoader, recordTypes ...string) func(context.Context, *storage.Store) error {
	return func(ctx context.Context, store *storage.Store) error {
		for _, recordType := range recordTypes {
			records, err := store.List(recordType)
			if err != nil {
				return err
			}
			for i, rec := range records {
				if records[i].Value, err = resign(ctx, rec.Value, s, p, kp, l); err != nil {
					return fmt.Errorf("failed to re-sign record %s/%s: %w", rec.Type, rec.ID, err)
				}
			}
			if err := store.PutAll(records...); err != nil {
				return err
			}
			log.G(ctx).WithFields(log.Fields{
				"type":  recordType,
				"count": len(records),
				"suite": s.SignatureType(),
			}).Info("re-signed records")
		}
		return nil
	}
}

func resign(ctx context.Context, raw json.RawMessage, s suite.Suite, p purpose.Purpose, kp keypair.KeyPair, l loader.DocumentLoader) (json.RawMessage, error) {
	doc, err := jsonmap.Parse(raw)
	if err != nil {
		return nil, err
	}
	signed, err := ldproof.Sign(ctx, doc, s, p, kp, l)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return out, nil
}
