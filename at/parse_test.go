package at_test

import (
	"testing"

	"i4.energy/across/sigfoxgw/at"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint64
	}{
		{name: "Value followed by OK", input: "1A2B\r\nOK", expected: 0x1A2B},
		{name: "Device ID", input: "\r\n002BEF36\r\n", expected: 0x002BEF36},
		{name: "PAC", input: "A1B2C3D4E5F60718\r\n", expected: 0xA1B2C3D4E5F60718},
		{name: "Lower case", input: "beef\r\n", expected: 0xBEEF},
		{name: "Hex prefix", input: "0x10\r\n", expected: 0x10},
		{name: "Trailing garbage", input: "12zz\r\n", expected: 0x12},
		{name: "No token", input: "\r\nOK\r\n", expected: 0},
		{name: "Error only", input: "ERROR\r\n", expected: 0},
		{name: "Empty", input: "", expected: 0},
		{name: "Not a number", input: "zz\r\n", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := at.ParseHex([]byte(tt.input)); got != tt.expected {
				t.Errorf("Expected %#x, got %#x for input %q", tt.expected, got, tt.input)
			}
		})
	}
}

func TestParseUint8(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint8
	}{
		{name: "Power level", input: "14\r\nOK\r\n", expected: 14},
		{name: "Max power", input: "\r\n24\r\n", expected: 24},
		{name: "Zero", input: "0\r\n", expected: 0},
		{name: "Truncated to 8 bits", input: "300\r\n", expected: 44},
		{name: "No token", input: "\r\n", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := at.ParseUint8([]byte(tt.input)); got != tt.expected {
				t.Errorf("Expected %d, got %d for input %q", tt.expected, got, tt.input)
			}
		})
	}
}

func TestParseUint32(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint32
	}{
		{name: "Frequency", input: "868130000\r\nOK\r\n", expected: 868130000},
		{name: "Leading spaces", input: "  920800000\r\n", expected: 920800000},
		{name: "Hex digits stop decimal parse", input: "12AB\r\n", expected: 12},
		{name: "No token", input: "OK", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := at.ParseUint32([]byte(tt.input)); got != tt.expected {
				t.Errorf("Expected %d, got %d for input %q", tt.expected, got, tt.input)
			}
		})
	}
}
