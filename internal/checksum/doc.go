// Package checksum provides content hashing with normalization support.
//
// Two checksums are available:
//
//   - Raw checksum: Hash of the exact content (detects all changes)
//   - Normalized checksum: Hash after unifying line endings and dropping
//     trailing whitespace (ignores edits that only reformat whitespace)
//
// Change detection between an original and an edited prepped document uses
// the raw checksum by default and the normalized one when whitespace-only
// edits should be ignored.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
