package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// TextProcessor provides utilities for processing free text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Drop invalid UTF-8 sequences
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// AddressTokens splits text into candidate address tokens.
// A token is a run of letters, digits and . @ + - _ that starts and ends
// on a word character and contains an @.
func (tp *TextProcessor) AddressTokens(text string) []string {
	text = norm.NFC.String(tp.SanitizeUTF8(text))

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isTokenRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimFunc(field, func(r rune) bool {
			return !isWordRune(r)
		})
		if !strings.Contains(field, "@") {
			continue
		}
		tokens = append(tokens, field)
	}

	tp.logger.Debug("Tokenized text",
		zap.Int("text_size", len(text)),
		zap.Int("tokens", len(tokens)))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTokenRune(r rune) bool {
	switch r {
	case '.', '@', '+', '-':
		return true
	}
	return isWordRune(r)
}
