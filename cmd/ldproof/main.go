// Command ldproof signs and verifies JSON-LD documents with linked data
// proofs and upgrades the record store.
package main

import (
	"fmt"
	"os"
)

// version is the record layout version written by upgrade.
const version = "v0.2.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
