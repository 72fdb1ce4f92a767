// Package store persists catalog products in a single DynamoDB table.
//
// Records are keyed by a server-generated uuid under the "id" attribute.
// Updates and deletes are written with a condition on the id existing; a
// missing record surfaces as ErrNotFound from the write itself.
//
// Search pages through the table with scans. The resume position is handed
// to callers as an opaque base64 token wrapping DynamoDB's LastEvaluatedKey;
// nothing outside this package builds or inspects one. A filtered page may
// return fewer records than its limit while a cursor remains, because the
// limit caps how many records the scan evaluates, not how many match.
package store
