// Command astrocat loads catalog files into a registry and queries it.
//
//	astrocat load --source local --prefix ./data
//	astrocat find 32349 hip.yaml extra.yaml.zst
//	astrocat load --source s3 --bucket star-catalogs --prefix release-7/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
