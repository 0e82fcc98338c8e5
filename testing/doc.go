// Package testing holds helpers for tests that exercise the solver service.
//
// The helpers start an in-process NATS server with JetStream, open extra
// client connections to it and create KV buckets. Everything is torn down
// through tb.Cleanup.
//
//   - StartEmbeddedNATS: one JetStream-enabled server plus a connection
//   - ConnectTo: another connection to the same server, e.g. for a second solver
//   - CreateJetStreamKV: a memory-backed KV bucket
//   - NewTestLogger: types.Logger routed through tb.Log
//
// Example:
//
//	func TestSolveOverNATS(t *testing.T) {
//	    _, nc := tstest.StartEmbeddedNATS(t)
//	    srv, _ := service.NewServer(nc, solver)
//	    // ...
//	}
package testing
