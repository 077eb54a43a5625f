package net

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"PixelFlood/internal/protocol"
	"PixelFlood/internal/state"

	"github.com/google/uuid"
)

// Session is the server side of one client connection. It owns its socket
// and buffers; the canvas is the only thing it shares.
type Session struct {
	ID   string
	Addr string

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	canvas *state.Canvas
	config *Config

	closeOnce sync.Once

	// Counters, touched only by the Serve goroutine.
	commands int
	painted  int
}

func newSession(conn net.Conn, canvas *state.Canvas, cfg *Config) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Addr:   conn.RemoteAddr().String(),
		conn:   conn,
		reader: bufio.NewReaderSize(conn, cfg.ReadBufferSize),
		writer: bufio.NewWriter(conn),
		canvas: canvas,
		config: cfg,
	}
}

// Serve runs the read/dispatch loop until the client leaves, goes idle or
// fails. Idle timeouts and a client hanging up are not errors.
func (s *Session) Serve() error {
	defer s.Close()

	for {
		line, err := s.readLine()
		if err != nil {
			switch {
			case isTimeout(err):
				log.Printf("[SESSION %s] Idle for %s, closing", s.ID, s.config.IdleTimeout)
				return nil
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		cmd, err := protocol.DecodeCommand(line)
		if err != nil {
			log.Printf("[SESSION %s] Got error: %v", s.ID, err)
			continue
		}
		s.commands++

		if err := s.dispatch(cmd); err != nil {
			return err
		}
	}
}

// readLine waits for the next non-blank line. The idle deadline is armed
// once per wait, so a stream of blank lines does not keep a client alive.
// A line cut off by the deadline is dropped, never dispatched. Lines that do
// not fit the read buffer end the session with ErrLineTooLong.
func (s *Session) readLine() (string, error) {
	if s.config.IdleTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout)); err != nil {
			return "", err
		}
	}
	for {
		raw, err := s.reader.ReadSlice('\n')
		line := string(raw)
		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			return "", fmt.Errorf("%w: more than %d bytes", ErrLineTooLong, s.reader.Size())
		case errors.Is(err, io.EOF) && strings.TrimSpace(line) != "":
			// A final unterminated line still counts; the next read reports the EOF.
			return line, nil
		default:
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

func (s *Session) dispatch(cmd protocol.Command) error {
	switch cmd := cmd.(type) {
	case protocol.Help:
		return s.write(protocol.HelpResponse{})

	case protocol.Size:
		return s.write(protocol.SizeResponse{Width: s.canvas.Width(), Height: s.canvas.Height()})

	case protocol.GetPx:
		if err := s.checkBounds("GetPx", cmd.X, cmd.Y); err != nil {
			return err
		}
		return s.write(protocol.PxResponse{X: cmd.X, Y: cmd.Y, Color: s.canvas.Get(cmd.X, cmd.Y)})

	case protocol.SetPx:
		if err := s.checkBounds("SetPx", cmd.X, cmd.Y); err != nil {
			return err
		}
		s.canvas.BlendSet(cmd.X, cmd.Y, cmd.Color)
		s.painted++
		return nil

	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

func (s *Session) checkBounds(op string, x, y int) error {
	if s.canvas.Contains(x, y) {
		return nil
	}
	return &BoundsError{Op: op, X: x, Y: y, Width: s.canvas.Width(), Height: s.canvas.Height()}
}

func (s *Session) write(r protocol.Response) error {
	if s.config.WriteTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if _, err := s.writer.WriteString(protocol.EncodeResponse(r)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Close releases the socket. Safe to call from any goroutine, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
