package at

import (
	"errors"
	"strings"
)

var (
	// ErrCommandOverflow is returned when the arguments of a command do not
	// fit in CommandCapacity bytes. The command is discarded, never truncated.
	ErrCommandOverflow = errors.New("at: command exceeds buffer capacity")

	// ErrUnknownCommandType is returned by Build for a CommandType it does
	// not know how to assemble.
	ErrUnknownCommandType = errors.New("at: unknown command type")

	// ErrUnexpectedArguments is returned when arguments are passed to a read
	// or config command. Only set commands carry arguments.
	ErrUnexpectedArguments = errors.New("at: command type takes no arguments")
)

// Build assembles a single command line of the form
//
//	<header><verb>[=<arg1>[,<arg2>...]]\r
//
// Empty arguments are skipped entirely; they never produce an empty field.
// The verb carries its own prefix, e.g. "$SF" or "S302".
//
// On failure the returned command is empty, so a broken command can never
// reach the transport.
func Build(typ CommandType, verb string, args ...string) ([]byte, error) {
	var b strings.Builder

	switch typ {
	case TypeSet:
		b.WriteString(Header)
		b.WriteString(verb)
	case TypeRead:
		if hasArguments(args) {
			return nil, ErrUnexpectedArguments
		}
		b.WriteString(Header)
		b.WriteString(verb)
		b.WriteString("?")
	case TypeConfig:
		if hasArguments(args) {
			return nil, ErrUnexpectedArguments
		}
		b.WriteString(HeaderConfig)
		b.WriteString(verb)
	default:
		return nil, ErrUnknownCommandType
	}

	emitted := 0
	for _, arg := range args {
		if arg == "" {
			continue
		}

		sep := ","
		if emitted == 0 {
			sep = "="
		}

		if b.Len()+len(sep)+len(arg)+len(CR) >= CommandCapacity {
			return nil, ErrCommandOverflow
		}

		b.WriteString(sep)
		b.WriteString(arg)
		emitted++
	}

	if b.Len()+len(CR) >= CommandCapacity {
		return nil, ErrCommandOverflow
	}
	b.WriteString(CR)

	return []byte(b.String()), nil
}

func hasArguments(args []string) bool {
	for _, arg := range args {
		if arg != "" {
			return true
		}
	}
	return false
}
