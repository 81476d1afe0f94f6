// Package report persists dashboard reports as pretty-printed JSON documents.
//
// Writes are atomic: the document is encoded into a temporary file next to
// the target and renamed over it, so a failed run never leaves a truncated
// or partially updated report behind.
//
// Example usage:
//
//	w := report.NewFileWriter("docs/dashboard-data.json")
//	if err := w.Write(r); err != nil {
//	    log.Fatal(err)
//	}
package report
