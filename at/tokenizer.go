package at

import (
	"bufio"
	"bytes"
)

// delimiters terminate a value token in a modem response. Longer
// delimiters come first so "ERROR" is never read as a value.
var delimiters = [][]byte{
	[]byte(ERROR),
	[]byte(OK),
	[]byte(CR),
	[]byte(LF),
}

// TokenSplitter is used for isolating value tokens in modem responses. It
// uses the signature of bufio.SplitFunc so it can be directly used with
// bufio.Scanner.
//
// A token is any run of bytes delimited by CR, LF, or the literal response
// codes "OK" and "ERROR". Runs of delimiters yield no empty tokens. When
// atEOF is true, the remaining bytes are returned as the final token.
func TokenSplitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// 1. Skip leading delimiters
	start := 0
	for start < len(data) {
		n := delimiterAt(data[start:])
		if n == 0 {
			break
		}
		start += n
	}

	if start == len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		// Keep a possible partial delimiter ("ERR") for the next call.
		return start, nil, nil
	}

	// 2. Find the end of the token
	for i := start; i < len(data); i++ {
		if delimiterAt(data[i:]) > 0 {
			return i, data[start:i], nil
		}
	}

	if atEOF {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

var _ bufio.SplitFunc = TokenSplitter

// delimiterAt returns the length of the delimiter data starts with, or 0.
func delimiterAt(data []byte) int {
	for _, d := range delimiters {
		if bytes.HasPrefix(data, d) {
			return len(d)
		}
	}
	return 0
}

// FirstToken returns the first value token in buf, or nil if buf holds
// nothing but delimiters.
func FirstToken(buf []byte) []byte {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 0, ResponseCapacity), bufio.MaxScanTokenSize)
	scanner.Split(TokenSplitter)

	if scanner.Scan() {
		return scanner.Bytes()
	}
	return nil
}
