// Package main provides the CLI entrypoint for delegen.
//
// delegen plans the forwarding members a class needs when it delegates
// interface implementations to held instances:
//   - analyze: derive class definitions from Go packages (struct embedding)
//   - check:   validate a class-definition file and plan every class
//   - plan:    write delegation plans as YAML, CBOR or a text listing
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("delegen.cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
