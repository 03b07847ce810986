// Package coda provides types, interfaces, and helpers for working with the
// Coda v1 REST API.
//
// # Overview
//
// The coda package defines the resource snapshots (Doc, Page, Table, Row,
// Column, Control, Formula), the request types sent with writes, and the
// interfaces of the bound handles and collection clients. A concrete
// implementation is provided by the codaclient package:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mackiedrew/coda-client/pkg/coda"
//	  "github.com/mackiedrew/coda-client/pkg/codaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := codaclient.New(ctx, &coda.Config{APIToken: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  docs, err := cli.Docs().List(ctx, &coda.DocListOptions{IsOwner: coda.Bool(true)})
//	  if err != nil { log.Fatal(err) }
//	  _ = docs
//	}
//
// # Handles
//
// A handle is bound to one entity (a doc id, a table id or name inside a
// doc, ...) and caches the last snapshot it saw. Handles are cheap to build
// and never perform I/O on construction:
//
//	table := cli.Docs().Handle("AbCDeFGH").Tables().Handle("grid-pqRst-U")
//	snap, err := table.Get(ctx) // fetches and caches
//
// Staleness is up to the caller: call Refresh to fetch again.
//
// # Mutations
//
// Writes are applied asynchronously by Coda. Every write returns a
// MutationHandle whose Wait polls the mutation status endpoint:
//
//	res, err := table.Rows().Upsert(ctx, req, false)
//	if err != nil { /* handle error */ }
//	done, err := res.Mutation.WaitDefault(ctx)
//
// Running out of attempts is not an error: Wait returns false.
//
// # Errors
//
// Non-2xx responses are returned as *APIError. Helpers such as IsNotFound,
// IsUnauthorized and IsForbidden branch on common cases.
package coda
