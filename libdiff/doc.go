// Package libdiff compares rendered and JSON encoded databases.
package libdiff
