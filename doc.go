// Package mumhash provides fast, non-cryptographic 64-bit hashers for hash
// tables and sharding.
//
// Three variants share the streaming [Hasher] contract and differ only in how
// each write is folded into the accumulator:
//
//   - [MumAdd]: every word is multiply-mixed with the next word of a fixed
//     entropy buffer and added to the accumulator.
//   - [Multilinear]: every word is multiplied by an odd number from a tiny
//     non-linear PRNG and added to the accumulator.
//   - [Poly]: hash = (hash + x) * K, rotated on output so the well-mixed high
//     bits land where tables take their bucket index.
//
// Byte and string writes go through a wyhash-style mixer first. Digests are
// stable across platforms and word sizes.
//
// None of the variants resist chosen-key attacks. Use a seeded or random
// [BuildHasher] when keys come from untrusted input, and something else
// entirely when security matters.
package mumhash
