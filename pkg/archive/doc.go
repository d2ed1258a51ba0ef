// Package archive provides the protocol layer shared by every surface of the
// archival storage client: typed request headers, credentials, endpoint
// configuration, and the error taxonomy.
//
// # Surfaces
//
// The remote service exposes three loosely related HTTP APIs:
//
//   - an S3-like object API for uploading and listing files (pkg/items)
//   - a read-only metadata API (pkg/items)
//   - a task-queue API for searching, submitting, and inspecting tasks
//     (pkg/tasks)
//
// All three attach headers through the Header model here and classify
// failures through the shared error taxonomy.
//
// # Authentication
//
// The service is S3-like but not S3-compatible: requests authenticate with a
// fixed "LOW access:secret" authorization scheme rather than AWS SigV4, so
// standard S3 SDKs cannot be used against it. Credentials come from explicit
// construction or from the process environment via CredentialsFromEnv.
//
// # Errors
//
// Every operation returns an error wrapping exactly one of the sentinels
// ErrTransport, ErrForbidden, ErrParse, ErrLocalIO, or ErrInvalidArgument.
// A 403 response is always reported as ErrForbidden regardless of body
// content, so callers can react to credential problems without inspecting
// status codes. Classification happens once, at the transport boundary, and
// is never downgraded by intermediate layers. No operation retries.
package archive
