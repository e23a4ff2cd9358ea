// critpath discovers named critical request paths from service topology
// snapshots, using a language model when one is configured and a
// deterministic statistical strategy otherwise.
//
// Usage:
//
//	critpath discover --snapshot topology.json [--save]
//	critpath analyze api-gateway,order-service,payment-service
//	critpath paths [--run <id>]
//	critpath serve [--metrics-listen :9090]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
