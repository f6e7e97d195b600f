// Package classdef provides the YAML class-definition schema, parsing,
// validation and the builder producing model.ClassModel values.
//
// A class-definition file describes the resolved types a set of classes
// delegates to, and the classes themselves.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - name: demo.Source
//	    kind: interface            # interface (default) | class
//	    type_params: [T]
//	    extends: [demo.Named]      # inherited members are flattened in
//	    members:
//	      - name: value
//	        kind: property
//	        type: T
//	        mutable: true          # setter taking one "value" parameter
//	      - name: read
//	        kind: function
//	        params: ["n: Int"]
//	        returns: T
//	      - name: label
//	        kind: property
//	        receiver: String       # extension member
//	        type: String
//	classes:
//	  - name: demo.Holder
//	    supertypes: [demo.Source<Int>]
//	    properties:
//	      - name: src              # read-only and stored unless told otherwise
//	        type: demo.Source<Int>
//	      - name: cache
//	        mutable: true
//	      - name: derived
//	        computed: true
//	    members:                   # explicit overrides
//	      - name: read
//	        kind: function
//	        params: ["n: Int"]
//	    delegations:
//	      - target: demo.Source
//	        by: src
//
// # Delegate expressions
//
// The text after "by" is classified by ParseExpression:
//   - "src" or "this.src" is a direct name read and may reuse the property's storage
//   - anything else well formed ("makeSource()", "Impl(1)", "a.b") is a general expression
//   - unbalanced brackets or quotes make the clause invalid
//
// # Supertypes
//
// Delegation targets are part of the class's supertype list. Build adds a
// target to the supertypes when the class does not list it explicitly.
package classdef
