package at

const (
	// Terminal Control
	CR   = "\r"
	LF   = "\n"
	CRLF = "\r\n"

	// Command headers
	Header       = "AT"
	HeaderConfig = "AT:"

	// Response Codes
	OK    = "OK"
	ERROR = "ERROR"

	// Markers
	RxMarker       = "RX="  // precedes a downlink payload
	FirmwareMarker = "UDL" // precedes the firmware version digits
)

// Capacities of the command and response buffers. Both are fixed by the
// module's UART firmware.
const (
	CommandCapacity  = 100
	ResponseCapacity = 100
)

// CommandType selects how a command line is assembled.
type CommandType int

const (
	TypeSet    CommandType = iota + 1 // AT<verb>=<args>
	TypeRead                          // AT<verb>?
	TypeConfig                        // AT:<verb>
)

func (t CommandType) String() string {
	switch t {
	case TypeSet:
		return "set"
	case TypeRead:
		return "read"
	case TypeConfig:
		return "config"
	default:
		return "unknown"
	}
}
