// Package plan decides what forwarding code a class that delegates
// interface implementations must have, and where each delegate lives.
//
// Planning pipeline:
//  1. For each delegation specifier, in declaration order:
//     - resolve the target among the class supertypes
//     - allocate the delegate field once: reuse a final stored property the
//       expression reads directly, otherwise name a fresh field
//  2. For each target member not explicitly overridden by the class, emit
//     forwarding descriptors (getter and optional setter for properties,
//     one per function overload)
//  3. Report explicit overrides and conflicting delegations as diagnostics
//
// A Plan is consumed through two entry points: EmitInit for fields that
// need constructor initialization, and EmitMembers for forwarded members.
package plan
