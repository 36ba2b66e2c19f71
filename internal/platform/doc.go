// Package platform abstracts the mutual-exclusion primitive the dispatch
// engine relies on behind a four-operation capability interface.
//
// Backends are selected by handing a Locker to NewGuard; when none is
// supplied the process-native channel lock is used, which is always
// available and supports timed acquisition. The Guard adds the readiness
// gate that lets logging run before the concurrency platform has started.
package platform
