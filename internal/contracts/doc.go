// Package contracts is the client-side model of a rental contract and the
// pure transformations the search view runs over the fetched list.
//
// # Overview
//
// Records arrive from the backend as loosely typed JSON objects (RawRecord).
// Normalize turns one into a Contract with numeric fields coerced and dates
// truncated to YYYY-MM-DD; ToRecord goes the other way for write payloads.
// Over a []Contract the package offers:
//
//   - Filter         case-insensitive substring match on the tenant's full name
//   - SortByExpiry   stable ascending order by end date
//   - Aggregate      active/expired/distinct-client counts as of an instant
//
// None of these functions mutate their input or touch the network.
//
// # Validation
//
// Validate checks a Contract before it is written: the tenant's first name
// and national id are mandatory, and the wire record must satisfy the
// embedded JSON schema (schema/contract.json). Failures are reported as
// *ValidationError, matchable with errors.Is(err, ErrValidation).
package contracts
