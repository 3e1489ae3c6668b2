package tester

import (
	"fmt"
	"strings"
)

// TestCase is one parsed (input, expected output) pair.
type TestCase struct {
	Input    string
	Expected string
}

const (
	caseSeparator  = "\n===\n"
	fieldSeparator = "\n--\n"
)

// ParseTests splits a raw blob into ordered test cases: cases are
// separated by a line holding only ===, and within a case the input and
// expected answer are separated by a line holding only --. Both fields
// are trimmed of surrounding whitespace.
func ParseTests(raw string) ([]TestCase, error) {
	chunks := strings.Split(raw, caseSeparator)
	cases := make([]TestCase, 0, len(chunks))
	for i, chunk := range chunks {
		in, ans, found := strings.Cut(chunk, fieldSeparator)
		if !found {
			return nil, fmt.Errorf("test case %d has no input/answer separator", i+1)
		}
		cases = append(cases, TestCase{
			Input:    strings.TrimSpace(in),
			Expected: strings.TrimSpace(ans),
		})
	}
	return cases, nil
}
