// Package analyze derives class definitions from Go source.
//
// It uses golang.org/x/tools/go/packages with go/types. Go has no
// delegation clause, but struct embedding of an interface is the same
// construct: the embedded field holds the delegate and its methods are
// promoted. The analyzer maps
//   - exported interfaces (and any interface a class embeds) to types
//   - exported structs embedding at least one interface to classes, with
//     one delegation per embedded interface whose delegate expression is
//     the embedded field itself
//   - other struct fields to mutable properties, and methods declared on
//     the struct to explicit members
package analyze
