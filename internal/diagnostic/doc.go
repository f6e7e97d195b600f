// Package diagnostic provides structured errors, warnings and infos
// reported while validating class definitions and planning delegations.
//
// Key capabilities:
//   - Unresolved supertype and delegation target reports with suggestions
//   - Malformed member signature errors
//   - Explanations of skipped forwards (explicit overrides)
//   - Conflicting delegation warnings
package diagnostic
