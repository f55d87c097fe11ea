package trivia

// HangmanCommon is the shared parameter block of §4.5's Hangman variants.
type HangmanCommon struct {
	Lives uint8
}
