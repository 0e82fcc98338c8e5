// Package testutil provides shared assertions and fixtures for partitioner tests.
//
// Examples of utilities that belong here:
//   - Assertion helpers (coverage of every task, sums derived from buckets)
//   - Test data generators (deterministic random task lists)
//   - Brute-force reference values used to cross-check the strategies
//
// Note: For NATS server setup, use the github.com/arloliu/tasksplit/testing package.
package testutil
