// Command ordersctl is the operator CLI for order-core: schema migrations,
// stock levels, dead-lettered outbox entries and reservation expiry.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}
