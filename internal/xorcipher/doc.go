// Package xorcipher implements repeating-key XOR.
//
// The same operation encrypts and decrypts: applying a key twice returns
// the original bytes. A one-byte key gives the classic single-byte XOR
// cipher that the cracker package attacks.
package xorcipher
