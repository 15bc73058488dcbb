// Package cracker recovers the plaintext of single-byte XOR ciphertexts.
//
// For one ciphertext the cracker builds a byte histogram, pairs the most
// frequent bytes with common English letters to guess keys, decrypts with
// every guess and keeps the decryption with the highest English score.
// For many ciphertexts it cracks each one and keeps the overall winner.
//
// Selection is deterministic: candidates are scanned in generation order
// and ciphertexts in input order, and a later entry replaces the current
// best only when its score is strictly greater. The concurrent variant
// collects every result first and then applies the same sequential
// reduction, so it always agrees with CrackBest.
//
// Usage:
//
//	d, err := cracker.CrackOne(ciphertext)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.Text, d.Score)
package cracker
