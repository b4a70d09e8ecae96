// Package services defines the [Provider] interface for remote catalog data
// and implements it for a YouTube-style JSON API.
//
// # Provider Interface
//
// The sync engine only ever sees attribute mappings and discriminated listing
// payloads, so any backend that can produce those can drive an import.
//
// # Catalog Implementation
//
// [CatalogService] is an HTTP client in two layers: a doRequest helper that
// throttles with [rate.Limiter], decodes JSON and surfaces API error details,
// and thin per-endpoint methods on top. Authentication is an API key query
// parameter, an OAuth bearer token via [oauth2.NewClient], or both.
//
// A provider miss (HTTP 404 or an empty document) is reported as a nil
// mapping with no error; the engine records it and moves on. Transport
// failures are real errors.
package services
