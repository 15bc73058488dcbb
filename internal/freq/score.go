package freq

// NonLetterPenalty is subtracted for every byte missing from the score table.
const NonLetterPenalty = 10

// assumedLetters are the plaintext letters most likely to be behind the
// most frequent ciphertext bytes, most common first.
var assumedLetters = [...]byte{'e', 't', 'a', 'i', 'o', 'n'}

// scoreTable rewards common lowercase English letters.
var scoreTable = map[byte]int{
	'e': 12,
	't': 9,
	'a': 8,
	'i': 7,
	'o': 6,
	'n': 6,
}

// AssumedLetters returns a copy of the assumed common-letter table.
func AssumedLetters() []byte {
	letters := assumedLetters
	return letters[:]
}

// LetterScore returns the score table value for b and whether b is in the table.
func LetterScore(b byte) (int, bool) {
	s, ok := scoreTable[b]
	return s, ok
}

// Score rates how much text looks like English. Each byte found in the
// score table adds its value; every other byte subtracts NonLetterPenalty.
// Wrong-key decryptions look like noise and score far below the right one.
func Score(text []byte) int {
	var score int
	for _, b := range text {
		if s, ok := scoreTable[b]; ok {
			score += s
			continue
		}
		score -= NonLetterPenalty
	}
	return score
}
