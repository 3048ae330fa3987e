// Package azdo provides types, interfaces, and helpers for working with the
// Azure DevOps REST API.
//
// # Overview
//
// The azdo package defines the domain types (e.g., Repo, Branch, PullRequest,
// Environment) and the interfaces for resource-oriented clients (e.g.,
// ReposClient, EnvironmentsClient). A concrete implementation of these clients
// is provided by the azdoclient package, which wires configuration, transport,
// authentication, state tracking, and dry-run mode. Most consumers should
// import azdoclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := azdoclient.New(&azdo.Config{
//	    Organization:        "my-org",
//	    Project:             "my-project",
//	    Username:            "first.last@example.com",
//	    PersonalAccessToken: "...",
//	    StateFile:           "main.state",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  repo, err := cli.Repos().Create(ctx, "my-repo", true)
//	  if err != nil { log.Fatal(err) }
//	  _ = repo
//	}
//
// # State tracking
//
// Every successful create, update, and delete is mirrored into a local
// StateStore, persisted as human-diffable JSON. The store records what this
// client believes exists remotely, so created resources can be reconciled or
// torn down later. The state file supports exactly one writer; see StateStore.
//
// # Dry-run mode
//
// With Config.DryRun set, every create and update on every resource type is
// staged as a PlannedChange instead of executed: no HTTP mutation is issued
// and the state store is untouched. Creates return placeholder resources with
// synthetic identifiers so chained calls keep working. Inspect the staged list
// with Client.PlannedChanges.
//
// # Errors
//
// Remote failures map onto a small taxonomy: NotFoundError, PermissionError,
// AlreadyExistsError, UpdateFailedError, DeletionFailedError, and the
// catch-all RequestError. Local validation failures surface as
// InvalidAttributeError before any network call. Helpers such as IsNotFound
// and IsPermissionDenied make it easy to branch on the common cases.
//
// One deliberate asymmetry: deleting a resource the API reports as 404 is
// treated as already deleted: a warning is logged and the state entry is
// still removed. Some APIs answer 404 for permission problems, so this can
// mask an authorization failure.
package azdo
