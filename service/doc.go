// Package service exposes a tasksplit Solver over NATS.
//
// The Server answers JSON solve requests on "<prefix>.solve" with a queue
// group, so any number of solver processes can share the load. Solutions can
// be stored in a JetStream KV bucket keyed by instance fingerprint, letting
// other processes read the latest plan for an instance without solving it
// again.
//
// Wire format:
//
//	request: {"strategy": "exhaustive", "machines": 2, "tasks": [{"id": 0, "duration": 10}]}
//	reply:   {"strategy": "exhaustive", "partition": [[...], [...]], "sums": [10, 10],
//	          "makespan": 10, "difference": 0, "key": "...", "code": "", "error": ""}
//
// Failures are reported in the reply's code and error fields. Client maps the
// code back to the matching sentinel error, so errors.Is works across the wire.
package service
