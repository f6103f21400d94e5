// Package update compares two cluster configurations and grades how
// disruptive applying the differences would be to a running cluster.
package update
