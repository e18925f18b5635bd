package ldproof

import (
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ecdsasecp256k1signature2019"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ed25519signature2018"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ed25519signature2020"
)

// DefaultRegistry returns a registry holding every built-in suite, each
// configured with opts.
func DefaultRegistry(opts ...suite.Option) *suite.Registry {
	return suite.NewRegistry(
		ed25519signature2018.New(opts...),
		ed25519signature2020.New(opts...),
		ecdsasecp256k1signature2019.New(opts...),
	)
}

// DefaultSuites returns every built-in suite.
func DefaultSuites(opts ...suite.Option) []suite.Suite {
	return DefaultRegistry(opts...).Suites()
}
