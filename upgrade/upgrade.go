// Package upgrade migrates a record store written by an older release to the
// current record layout.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"sort"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"
	"golang.org/x/mod/semver"

	"github.com/pilacorp/go-ldproof/storage"
)

// ErrUpgrade is returned when an upgrade cannot be started or a step fails.
var ErrUpgrade = fmt.Errorf("upgrade failed: %w", cerrdefs.ErrFailedPrecondition)

// Step is the work registered for upgrading from one version.
type Step struct {
	// ResaveRecords lists record types rewritten unchanged.
	ResaveRecords []string
	// Update runs after the records are resaved.
	Update func(ctx context.Context, s *storage.Store) error
}

// Config maps a version, such as "v0.7.2", to the step upgrading from it.
type Config map[string]Step

type options struct {
	fromVersion string
}

// Option configures Run.
type Option func(*options)

// WithFromVersion sets the version to upgrade from when the store carries no
// version marker. A stored marker takes precedence.
func WithFromVersion(v string) Option {
	return func(o *options) {
		o.fromVersion = v
	}
}

// Run upgrades s to version to. It applies the steps of every configured
// version from the current one up to, but excluding, to in version order,
// then records to as the store version.
func Run(ctx context.Context, s *storage.Store, cfg Config, to string, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !semver.IsValid(to) {
		return fmt.Errorf("%w: invalid target version %q", ErrUpgrade, to)
	}

	from, err := fromVersion(ctx, s, o.fromVersion)
	if err != nil {
		return err
	}
	if semver.Compare(from, to) == 0 {
		return fmt.Errorf("%w: version %s to upgrade from and current version to upgrade to %s are same", ErrUpgrade, from, to)
	}
	if _, ok := cfg[from]; !ok {
		return fmt.Errorf("%w: no upgrade configuration found for %s", ErrUpgrade, from)
	}

	versions, err := sortedVersions(cfg)
	if err != nil {
		return err
	}

	logger := log.G(ctx).WithFields(log.Fields{"from": from, "to": to})
	for _, v := range versions {
		if semver.Compare(v, from) < 0 || semver.Compare(v, to) >= 0 {
			continue
		}
		step := cfg[v]
		for _, recordType := range step.ResaveRecords {
			n, err := s.Resave(recordType, nil)
			if err != nil {
				return fmt.Errorf("%w: failed to resave %s records: %w", ErrUpgrade, recordType, err)
			}
			logger.WithFields(log.Fields{"version": v, "type": recordType, "records": n}).Info("resaved records")
		}
		if step.Update != nil {
			if err := step.Update(ctx, s); err != nil {
				return fmt.Errorf("%w: update step for %s: %w", ErrUpgrade, v, err)
			}
			logger.WithField("version", v).Info("updated records")
		}
	}

	if err := s.SetVersion(to); err != nil {
		return fmt.Errorf("%w: failed to write version marker: %w", ErrUpgrade, err)
	}
	logger.Info("upgrade complete")
	return nil
}

func fromVersion(ctx context.Context, s *storage.Store, explicit string) (string, error) {
	stored, err := s.Version()
	switch {
	case err == nil:
		if explicit != "" && explicit != stored {
			log.G(ctx).WithField("version", stored).Warnf("version found in storage, from-version %s will be ignored", explicit)
		}
		return stored, nil
	case !errors.Is(err, storage.ErrNotFound):
		return "", fmt.Errorf("%w: failed to read version marker: %w", ErrUpgrade, err)
	case explicit == "":
		return "", fmt.Errorf("%w: version not found in storage and no from-version specified", ErrUpgrade)
	case !semver.IsValid(explicit):
		return "", fmt.Errorf("%w: invalid from-version %q", ErrUpgrade, explicit)
	}
	return explicit, nil
}

func sortedVersions(cfg Config) ([]string, error) {
	versions := make([]string, 0, len(cfg))
	for v := range cfg {
		if !semver.IsValid(v) {
			return nil, fmt.Errorf("%w: invalid version %q in upgrade configuration", ErrUpgrade, v)
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) < 0
	})
	return versions, nil
}
