// Package qtest provides types, interfaces, and helpers for working with the
// qTest Manager REST API (v3).
//
// # Overview
//
// The qtest package defines the domain records (Project, Release, TestCycle,
// User) and the interfaces of the resource-oriented clients (ProjectsClient,
// ReleasesClient, TestCyclesClient, UsersClient). A concrete implementation is
// provided by the qtestclient package, which wires configuration, transport and
// authentication. Most consumers should import qtestclient to construct a
// client and then use the resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := qtestclient.NewWithPassword(ctx, "mycompany", "user@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  projects, err := cli.Projects().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = projects
//
//	  cycle, err := cli.TestCycles(projects[0].ID).Create(ctx, &qtest.TestCycleCreateRequest{
//	    Name:       "Sprint 12",
//	    ParentType: qtest.TestCycleParentRelease,
//	    ParentID:   42,
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = cycle
//	}
//
// # Authentication
//
// Constructing a client performs exactly one OAuth password grant. The token is
// attached to every later request and is never refreshed automatically.
//
// # Errors
//
// Failures are reported with the error kinds AuthenticationError,
// TransportError, NotFoundError, ValidationError, DecodeError and StatusError.
// IsNotFound, IsValidation, IsAuthentication, IsTransport, IsDecode and
// IsUnauthorized branch on them. Delete operations never fail on a non-2xx
// status; they report false instead.
//
// # Interceptors
//
// Request/response interceptors (logging, request IDs, rate limiting, metrics)
// run around every call made by the HTTP layer.
package qtest
