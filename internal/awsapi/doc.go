// Package awsapi wraps the EC2 API surface used by configuration checks.
//
// The [EC2] interface is the only way the rest of the codebase talks to the
// provider. Dry-run calls return an explicit tri-state outcome: success
// (nil fault, nil error), a structured [APIFault] the caller can grade, or a
// transport error that aborts the whole validation run. Throttling-class
// provider errors are retried with bounded exponential backoff; everything
// else surfaces immediately.
package awsapi
