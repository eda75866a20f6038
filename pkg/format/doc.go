// Package format turns provider data into the deterministic text replies of the finance tools.
//
// Formatting never fails: empty inputs render as empty tables, missing
// statement cells render as NotAvailable, and any value kind the formatter does
// not know falls back to its fmt representation.
package format
