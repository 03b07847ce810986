// Package codaclient is the entry point for constructing a Coda API client that
// implements the coda.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the coda package. Most applications
// import codaclient to build a client, then walk from the returned coda.Client
// to docs, tables and rows.
//
// Quick start
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
//
//	  cli, err := codaclient.NewWithToken(ctx, "your-api-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with the full configuration:
//	  cli, err = codaclient.New(ctx, &coda.Config{
//	    APIToken: "your-api-token",
//	    RetryMax: 3, // transport retries of 429 and 5xx responses
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  docs, err := cli.Docs().List(ctx, &coda.DocListOptions{IsOwner: coda.Bool(true)})
//	  if err != nil { log.Fatal(err) }
//	  _ = docs
//	}
//
// # Environment
//
// NewFromEnv reads the token from CODA_API_TOKEN and an optional API root from
// CODA_API_URL.
package codaclient
