// Package console provides types, interfaces, and helpers for working with the
// console management API of a backend-as-a-service platform.
//
// # Overview
//
// The console package defines the domain types (App, Table, CacheEntry,
// Counter, SystemStatus) and the interfaces of the resource-oriented clients
// (AppsClient, TablesClient, CacheClient, ...). A concrete implementation is
// provided by the consoleclient package, which wires configuration,
// transport, and authentication.
//
//	cli, err := consoleclient.New(ctx, &console.Config{ConsoleURL: "https://develop.example.com"})
//	if err != nil { log.Fatal(err) }
//
//	tables, err := cli.Tables().List(ctx, appID)
//
// # Paths and queries
//
// BuildPath encodes every path segment on its own, so a table called
// "my table" or a counter called "a/b" never breaks the route. Query keeps
// parameters in insertion order; nil values are dropped and slices repeat
// their key:
//
//	q := console.NewQuery().Set("pageSize", 10).Set("offset", 20).Set("where", nil)
//	console.WithQuery("/app/console/cache", q) // "/app/console/cache?pageSize=10&offset=20"
//
// # Bodies
//
// Request bodies are one of NoBody, RawBody, or JSONBody. Only JSONBody adds a
// "Content-Type: application/json" header.
//
// # Errors
//
// Every failure is an *APIError carrying the HTTP status, the message, and the
// parsed body. Transport failures use status 0. IsNotFound, IsUnauthorized,
// and IsForbidden branch on common cases.
//
// # Interceptors
//
// Request and response interceptors (logging, headers, request ids, metrics)
// run around every call when installed through Config.Interceptors.
package console
