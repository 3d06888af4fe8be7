// Package auth is the credential and admission gate for a multi-tenant
// application: it hashes and verifies user credentials, mints signed,
// expiring claim bundles, and enforces role-based admission at the request
// boundary.
//
// Identity lifecycle:
//   - AuthUser records are kept in an injected IdentityStore keyed by email.
//     IdentityOperations composes the bcrypt hasher, the store, and the
//     TokenService into create/find/update/delete/login. Login collapses
//     unknown email, wrong password, and wrong role into a single
//     ErrInvalidCredentials so callers cannot enumerate accounts.
//
// Tokens:
//   - Tokens are self-contained HS256 bundles carrying email, role, and the
//     owning tenant reference. Validity is signature plus expiration; there
//     is no server-side session table and no revocation list.
//
// Admission:
//   - middleware/gateware gates each request: token present, token valid,
//     role allowed. Failures map to fixed JSON responses and never propagate
//     past the gate. On success decoded claims are attached to the request
//     context for downstream handlers.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by the lifecycle
//     operations to describe create, update, delete, and login events. Sinks
//     run best-effort (errors are logged) so you can forward to a database
//     or queue without blocking authentication.
package auth
