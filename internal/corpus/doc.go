// Package corpus loads conformance scenarios from YAML files.
//
// # File format
//
// A corpus file holds one or more scenarios as YAML documents:
//
//	feature: Match
//	categories: [clauses, match]
//	name: returns friends of friends
//	example: 2
//	steps:
//	  - kind: setup
//	  - kind: parameters
//	    params:
//	      - name: name
//	        value: "Alice"
//	  - kind: execute
//	    role: init
//	    query: "CREATE (:Person {name: 'Alice'})"
//	  - kind: execute
//	    role: exec
//	    query: "MATCH (n:Person) RETURN n.name"
//	  - kind: expect-result
//	    sorted: true
//	    records:
//	      header: [n.name]
//	      rows:
//	        - {n.name: "Alice"}
//	  - kind: side-effects
//	    counts: {added-nodes: 1}
//
// Decoding is strict: unknown fields are rejected so typos surface as load
// errors. Step kinds map one-to-one onto the scenario.Step variants; the
// execute role is one of init, exec, or side-effect.
//
// Loading never validates scenario semantics (this is inspection tooling,
// not a verifier). In particular a result row missing a header column loads
// fine and is rejected later by the renderer, which is the component that
// owns that invariant.
package corpus
