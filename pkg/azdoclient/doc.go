// Package azdoclient provides the primary entry point for constructing an
// Azure DevOps API client that implements the azdo.Client interface.
//
// It layers configuration, HTTP transport, authentication, and local state
// tracking on top of the resource interfaces and types defined in the azdo
// package. Most applications should import azdoclient to build a client, then
// use the returned azdo.Client to access resource-specific clients, for
// example Repos(), PullRequests(), Environments(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/azdokit/azdo-client/pkg/azdo"
//	  "github.com/azdokit/azdo-client/pkg/azdoclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := azdoclient.New(&azdo.Config{
//	    Organization:        "my-org",
//	    Project:             "my-project",
//	    Username:            "user@example.com",
//	    PersonalAccessToken: "pat",
//	    StateFile:           "azdo-state.json",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the azdo.Client interface
//	  repos, err := cli.Repos().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = repos
//	}
//
// # Dry-run mode
//
// With Config.DryRun set, mutating calls are staged instead of executed and
// can be inspected through Client.PlannedChanges. Reads still hit the remote
// API.
//
// # Helpers
//
// The package also provides the convenience constructor NewWithToken that
// wraps New with the appropriate configuration, and NewWithSession for
// callers that bring their own transport.
package azdoclient
