// Package uuidscrub finds UUIDs in text and replaces them with stable tokens.
//
// A Session carries the token mapping and placeholder counter for a whole run,
// so the same UUID receives the same token in every file it appears in:
//
//	session := uuidscrub.NewSession()
//	for _, content := range files {
//	    res, err := uuidscrub.Scrub(content, opts, session)
//	    ...
//	}
//	original, err := uuidscrub.Restore(scrubbed, session.Mapping, true)
//
// Sessions are not synchronized. Scrub files of one run sequentially.
package uuidscrub
