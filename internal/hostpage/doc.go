// Package hostpage extracts workflow identifiers from a snapshot of the SEI
// host page.
//
// The host system renders the logged-in user, the current unit, the process
// breadcrumb and a tree iframe into fixed elements; everything downstream
// (identity resolution, document inclusion) is keyed off values scraped from
// those elements. This package is the only place that knows the host page's
// element ids, so the workflow layer stays host-page-agnostic and testable
// with synthetic snapshots.
package hostpage
