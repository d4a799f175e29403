package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/maritestore/pos/internal/app"
)

// session holds the reader/writer pair and application handle for one
// interactive run.
type session struct {
	app *app.App
	in  *bufio.Reader
	out io.Writer
}

func newSession(a *app.App, in io.Reader, out io.Writer) *session {
	return &session{app: a, in: bufio.NewReader(in), out: out}
}

// prompt prints the message and reads one trimmed line. io.EOF ends the
// surrounding loop.
func (s *session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}
