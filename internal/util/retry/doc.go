// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with a configurable attempt budget,
// initial delay, and maximum delay. It is used for cloud provider API calls
// that may fail transiently, most notably request throttling.
package retry
