// Package account contains the Account aggregate: the role-tagged identity
// record the credential-reset service operates on. The single-use reset-token
// invariant (digest and expiry live and die together) is enforced here, not in
// the storage layer.
package account
