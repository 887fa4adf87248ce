// Package document reads and writes prepped documents.
//
// # Format
//
// A prepped document is a short header followed by one block per file:
//
//	File listing generated 2025-06-26 12:15:00 by prepdir version 1.0.0 (go install ...)
//	Base directory is '/home/me/project'
//	=-=-=-=-=-=-=-= Begin File: 'src/main.go' =-=-=-=-=-=-=-=
//	package main
//	=-=-=-=-=-=-=-= End File: 'src/main.go' =-=-=-=-=-=-=-=
//
// Documents are expected to pass through editors and language models, so
// the reader is lenient: marker delimiters are any run of three or more '='
// or '-' characters, and structural problems are reported as errors and
// warnings in a ValidationResult instead of aborting the scan.
//
// Render and Validate round-trip: rendering entries and validating the
// output recovers the exact contents.
package document
