// Package smoketests contains the ecommerce system smoke test: the definitions of the services
// under test, the HTTP exchanges with them, and the fixed order of the steps.
//
// Infrastructure that is not specific to these services, such as launching and stopping
// subprocesses, readiness polling, and step bookkeeping, is in the lower-level framework
// package.
package smoketests
