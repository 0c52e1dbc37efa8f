// Command bufmap drives buffer layout aggregations outside a query engine.
//
//	bufmap layout 16 32 96 160
//	echo '{"type":"aggregate","function":"wasmati.getBufferLocationMap","values":[16,32]}' | bufmap adapter
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
