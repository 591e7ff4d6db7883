// Package credential implements the two-stage digest chain used to store
// account secrets. The plaintext password never reaches the server: the
// client submits ClientDigest(email, plain), and only
// StoredDigest(userID, clientDigest) is ever persisted. Chaining the user id
// into the second stage keeps a leaked stored digest from being replayed
// against another account.
package credential

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"
)

// TempSecretLen is the length of the plaintext replacement password issued
// by the reset flow.
const TempSecretLen = 10

// ClientDigest computes the first-stage digest: hex(sha1(email + ":" + plain)).
// Normally the client computes this before the secret leaves the browser;
// the server only needs it when it mints a replacement password itself.
func ClientDigest(email, plain string) string {
	sum := sha1.Sum([]byte(email + ":" + plain))
	return hex.EncodeToString(sum[:])
}

// StoredDigest computes the second-stage digest: hex(sha1(uid + ":" + clientDigest)).
// This is the only form of the secret that is ever written to the store.
func StoredDigest(uid, clientDigest string) string {
	sum := sha1.Sum([]byte(uid + ":" + clientDigest))
	return hex.EncodeToString(sum[:])
}

// TempSecret derives the replacement plaintext password issued by the reset
// flow: the first TempSecretLen hex characters of md5(uid + ":" + unix millis).
// The input is predictable, so this is not a strong random secret; it is a
// temporary password the user is told to change after logging in.
func TempSecret(uid string, at time.Time) string {
	sum := md5.Sum([]byte(uid + ":" + strconv.FormatInt(at.UnixMilli(), 10)))
	return hex.EncodeToString(sum[:])[:TempSecretLen]
}
