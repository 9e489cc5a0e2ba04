// Package validator holds validator identities, voting power and the
// validator-set commitment hash.
//
// A Set is ordered by ascending address and hashed as a Merkle tree over the
// amino encoding of each member's {pub_key, voting_power}. Signature
// verification dispatches through a Verifiers table keyed by the public key
// algorithm; Ed25519 is the only algorithm registered by default.
package validator
