// Package registry implements a vehicle owner registry backend: owner
// accounts with bcrypt credentials, bearer token issuance, and
// ownership-scoped vehicle records.
//
// Ownership scoping:
//   - Every vehicle belongs to exactly one owner. Reads, updates, and
//     deletes always filter by both the vehicle id and the authenticated
//     owner id, so a vehicle that belongs to someone else is
//     indistinguishable from one that does not exist.
//
// Tokens:
//   - Bearer tokens are HS256 JWTs carrying the owner's public profile and
//     an expiry. The password hash never leaves the process.
package registry
