package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"PixelFlood/internal/state"
)

const helpText = `Commands:
    - HELP - Show this message
    - SIZE - Get canvas size
    - PX [x] [y] - Get color from canvas at this position
    - PX [x] [y] [color] - Paint this color on canvas at this position
      color is rrggbb or rrggbbaa in hex, alpha defaults to ff`

// DecodeCommand parses one input line.
func DecodeCommand(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return nil, ErrBlankLine
	case "HELP":
		return Help{}, nil
	case "SIZE":
		return Size{}, nil
	}

	fields := strings.Fields(trimmed)
	if fields[0] != "PX" {
		return nil, &UnknownCommandError{Line: line}
	}
	return decodePx(fields[1:])
}

func decodePx(args []string) (Command, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("PX takes 2 or 3 arguments, got %d: %w", len(args), ErrInvalidInput)
	}
	x, err := parseCoord(args[0])
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(args[1])
	if err != nil {
		return nil, err
	}
	if len(args) == 2 {
		return GetPx{X: x, Y: y}, nil
	}
	c, err := ParseColor(args[2])
	if err != nil {
		return nil, err
	}
	return SetPx{X: x, Y: y, Color: c}, nil
}

func parseCoord(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("coordinate %q: %w", s, ErrInvalidInput)
	}
	return int(n), nil
}

// ParseColor reads rrggbb (opaque) or rrggbbaa. Hex digits may be any case.
func ParseColor(s string) (state.Color, error) {
	if len(s) != 6 && len(s) != 8 {
		return 0, fmt.Errorf("color %q: want 6 or 8 hex digits: %w", s, ErrInvalidInput)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, ErrInvalidInput)
	}
	if len(s) == 6 {
		return state.Color(v).WithAlpha(0xff), nil
	}
	// rrggbbaa -> aarrggbb
	return state.Color(v >> 8).WithAlpha(uint8(v)), nil
}

// EncodeResponse renders a response without a trailing newline.
func EncodeResponse(r Response) string {
	switch r := r.(type) {
	case HelpResponse:
		return helpText
	case SizeResponse:
		return fmt.Sprintf("SIZE %d %d", r.Width, r.Height)
	case PxResponse:
		return fmt.Sprintf("PX %d %d %s", r.X, r.Y, r.Color)
	default:
		panic(fmt.Sprintf("protocol: unknown response %T", r))
	}
}
