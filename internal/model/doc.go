// Package model defines the resolved class description consumed by the
// delegation planner.
//
// A ClassModel is produced upstream (from a class-definition file or from Go
// source) and is read-only once built:
//   - Supertypes carry fully resolved member tables, inherited members included
//   - Delegations are the "Target by expression" clauses in declaration order
//   - Properties are the class's own stored or computed properties
//   - Members are the class's explicitly declared members (overrides)
package model
