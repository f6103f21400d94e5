// Package configfile reads cluster configuration files and turns them into
// the typed resource tree the validation and update engines operate on.
package configfile
