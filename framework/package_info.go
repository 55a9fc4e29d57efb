// Package framework contains the low-level implementation of the smoke test harness
// infrastructure, independent of which services are being tested.
//
// The general model is:
//
// 1. The harness builds and launches each service under test as a subprocess (ProcessGroup),
// then waits for the service's health endpoint to report that it is ready (WaitForService).
//
// 2. The run is a strict sequence of named steps. There is a notion of a step context which is
// similar to Go's *testing.T, allowing pieces of test logic to be associated with a step
// identifier and to accumulate success/failure results. Unlike *testing.T, a failed step halts
// the run: every later step is reported as skipped.
//
// 3. Whatever happens, every launched subprocess is stopped at the end of the run.
//
// The domain-specific code that knows what is being tested is responsible for the service
// definitions, the HTTP exchanges, and the order of the steps.
package framework
