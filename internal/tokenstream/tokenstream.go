// Package tokenstream implements the destructively-consumed token sequence
// that drives the word-based reconstruction loop. A Stream is exclusively
// owned by one parse invocation; it is not safe for concurrent use and is
// never shared across parses.
package tokenstream

import "strings"

// Stream is an ordered sequence of string tokens consumed from the front.
// Consumption is destructive: the stream only ever shrinks, which is what
// guarantees termination of the loops built on top of it.
type Stream struct {
	tokens []string
}

// New creates a Stream over the given tokens. The slice is owned by the
// stream afterwards.
func New(tokens []string) *Stream {
	return &Stream{tokens: tokens}
}

// FromLines joins lines with single spaces and splits on whitespace.
func FromLines(lines []string) *Stream {
	return New(strings.Fields(strings.Join(lines, " ")))
}

// Len returns the number of tokens remaining.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Empty reports whether the stream is exhausted.
func (s *Stream) Empty() bool {
	return len(s.tokens) == 0
}

// Peek returns the token at offset i from the front without consuming it.
func (s *Stream) Peek(i int) (string, bool) {
	if i < 0 || i >= len(s.tokens) {
		return "", false
	}
	return s.tokens[i], true
}

// Front returns the first token, or the empty string when exhausted.
func (s *Stream) Front() string {
	if len(s.tokens) == 0 {
		return ""
	}
	return s.tokens[0]
}

// PopFront consumes and returns the first token.
func (s *Stream) PopFront() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, true
}

// Drop consumes up to n tokens from the front.
func (s *Stream) Drop(n int) {
	if n > len(s.tokens) {
		n = len(s.tokens)
	}
	s.tokens = s.tokens[n:]
}

// RemoveAt consumes the token at offset i, shifting later tokens forward.
func (s *Stream) RemoveAt(i int) {
	if i < 0 || i >= len(s.tokens) {
		return
	}
	s.tokens = append(s.tokens[:i:i], s.tokens[i+1:]...)
}

// Window returns a copy of the first n tokens (fewer when the stream is
// shorter).
func (s *Stream) Window(n int) []string {
	if n > len(s.tokens) {
		n = len(s.tokens)
	}
	out := make([]string, n)
	copy(out, s.tokens[:n])
	return out
}

// Tokens returns the remaining tokens. The returned slice is the stream's
// backing storage; callers must not retain it across mutations.
func (s *Stream) Tokens() []string {
	return s.tokens
}

// Replace swaps the remaining tokens for a rearranged sequence.
func (s *Stream) Replace(tokens []string) {
	s.tokens = tokens
}

// Transform applies fn to every remaining token in place.
func (s *Stream) Transform(fn func(string) string) {
	for i, tok := range s.tokens {
		s.tokens[i] = fn(tok)
	}
}
