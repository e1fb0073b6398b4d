// Package qtestclient provides the primary entry point for constructing a
// qTest Manager API client that implements the qtest.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the qtest package. Most applications
// should import qtestclient to build a client, then use the returned
// qtest.Client to reach the resource clients: Projects(), Releases(projectID),
// TestCycles(projectID) and Users().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/qtest/pkg/qtest"
//	  "github.com/fivetwenty-io/qtest/pkg/qtestclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Log in with a password grant against https://acme.qtestnet.com.
//	  cli, err := qtestclient.NewWithPassword(ctx, "acme", "user@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or reuse an access token you already have:
//	  cli, err = qtestclient.NewWithToken(ctx, "acme", "0b4d...")
//
//	  // Or configure everything explicitly:
//	  cli, err = qtestclient.New(ctx, &qtest.Config{
//	    BaseURL:           "https://qtest.internal.example.com",
//	    Username:          "user@example.com",
//	    Password:          "secret",
//	    RequestsPerSecond: 5,
//	  })
//
//	  releases, err := cli.Releases(42).List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = releases
//	}
//
// Sessions
//
// A password grant happens once, while the client is constructed. The session
// is never refreshed: once the token expires calls fail with a 401 that
// qtest.IsUnauthorized recognizes, and a new client has to be built.
package qtestclient
