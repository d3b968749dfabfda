// Package models defines domain entities and Notion wire types for the VideoHub catalog service.
//
// The package contains two categories of types:
//
// 1. Owned output shapes consumed by the HTTP layer and CLI:
//   - [VideoRecord] : One normalized catalog entry per Notion page
//   - [Snapshot] : A persisted point-in-time capture of the catalog
//
// 2. Notion wire types mirroring the database-query response:
//   - [QueryResponse] : Top-level query result with ordered pages
//   - [Page] : One database row with its property bag and optional cover
//   - [Property] : The tagged union of property values, discriminated by Type
//
// Property variants carry only the fields valid for their declared type; readers
// dispatch on [Property.Type] and treat anything unrecognized as empty.
package models
