/*
Package auth provides the admin credential and ID generation utilities.

# Admin Credential

A single username/password pair stored as a bcrypt hash. The credential is
seeded at first startup from configuration:

	created, err := auth.EnsureDefaultAdmin(db, cfg.AdminUser, cfg.AdminPassword)

Seeding is idempotent: an existing credential is never overwritten, so the
configured plaintext only matters the first time the server runs against a
fresh database. Login checks go through:

	err := auth.Authenticate(db, username, password)

which returns ErrInvalidCredentials for both unknown usernames and wrong
passwords.

# ID Generation

Poll IDs are the opaque short tokens that appear in voting links (first 8
characters of a UUIDv4):

	pollID := auth.GeneratePollID()

Question and vote rows use random hex IDs:

	id, err := auth.GenerateID(12)  // 24 hex characters

Voter sessions are generated client-side and treated as opaque strings;
this package plays no part in them.
*/
package auth
