package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams over x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine returns the next line of r without its line ending. A last line
// lacking a newline is still returned; io.EOF comes back only once nothing
// is left. The REPL and every prompt read through here so that they share
// one buffer.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText writes prompt and "> " to w and returns the next line of
// input, trimmed.
//
//	Email
//	> _
func GetSimpleText(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}
	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword asks for a password. On a terminal it is read without echo;
// with piped input the next line of r is the password. Callers wipe the
// result once done.
func GetPassword(r *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Mot de passe: "); err != nil {
		return nil, err
	}
	defer fmt.Fprintln(w)

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}
	return readPassword(fd)
}

// GetMultiline writes prompt to w and collects lines up to an empty line or
// the end of input. The lines are joined with '\n' and the result trimmed.
func GetMultiline(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n(ligne vide pour terminer)\n", prompt); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String()), nil
}

// wipe zeroes b in place.
func wipe(b []byte) {
	clear(b)
}
