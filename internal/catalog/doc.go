// Package catalog provides the HTTP client for the product catalog API
// and the pure query semantics shared between its two retrieval paths.
//
// # Overview
//
// The package has two halves. The transport half (client.go, breaker.go,
// errors.go, types.go) talks to the REST backend: paginated product and
// review queries, review submission, helpful-vote toggling, review
// summaries, and batch translation. The semantics half (category.go,
// localquery.go) holds the filter, sort, and normalization rules that
// must behave identically whether a query is answered by the server or
// evaluated locally over individually fetched favorites.
//
// # Page Envelope Policy
//
// Every paginated endpoint returns a Page[T]. The server's `last` flag
// is the only continuation signal: HasMore is true iff `last == false`.
// A missing flag means "assume no more pages". This is a client policy,
// not a server guarantee, and it exists so a server that omits the flag
// can never induce an infinite fetch loop. All three screens consume
// pagination exclusively through Page.HasMore and Page.PageNumber so
// the policy has a single point of change.
//
// # Category Normalization
//
// NormalizeCategory maps free-text category input to the server's
// canonical uppercase tokens, including the multi-word synonyms for
// "HOME & KITCHEN" and "SPORTS & OUTDOORS". The client query encoder
// and the favorites-mode local filter both call it, which keeps the two
// retrieval modes agreeing on what a category filter means.
//
// # Error Taxonomy
//
//   - Transport failures: wrapped errors from the underlying client,
//     including fast failures while the circuit breaker is open.
//   - ErrNotFound: unknown product or review id (HTTP 404).
//   - ValidationError: input rejected locally (rating range, missing
//     device id) or by the API (HTTP 400/422).
//
// Review input is validated with go-playground/validator before any
// request is issued; ValidateRating exposes the rating check alone for
// screens that validate before acquiring a device id.
//
// # Circuit Breaker
//
// All requests flow through a sony/gobreaker breaker. It trips when at
// least half of a minimum sample of requests fail (transport errors or
// 5xx), stays open briefly, then probes with a single request. 4xx
// responses are treated as successful round trips.
package catalog
