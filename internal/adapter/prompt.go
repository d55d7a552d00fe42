package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmcdole/soap4/internal/domain"
)

// TerminalPrompt asks for credentials on the controlling terminal.
// The password is read without echo.
type TerminalPrompt struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() ([]byte, error)
}

// NewTerminalPrompt creates a prompt reading from stdin
func NewTerminalPrompt() *TerminalPrompt {
	fd := int(os.Stdin.Fd())
	return newTerminalPrompt(os.Stdin, os.Stderr, func() ([]byte, error) {
		if !term.IsTerminal(fd) {
			return nil, fmt.Errorf("stdin is not a terminal")
		}
		return term.ReadPassword(fd)
	})
}

func newTerminalPrompt(in io.Reader, out io.Writer, readPassword func() ([]byte, error)) *TerminalPrompt {
	return &TerminalPrompt{
		in:           bufio.NewReader(in),
		out:          out,
		readPassword: readPassword,
	}
}

// Credentials implements domain.CredentialPrompt. An empty login, EOF or
// a failed password read counts as a cancelled prompt.
func (p *TerminalPrompt) Credentials(title, reason string) domain.Credentials {
	fmt.Fprintf(p.out, "%s: %s\n", title, reason)

	fmt.Fprint(p.out, "Login: ")
	line, err := p.in.ReadString('\n')
	username := strings.TrimSpace(line)
	if username == "" || (err != nil && err != io.EOF) {
		fmt.Fprintln(p.out)
		return domain.Credentials{Rejected: true}
	}

	fmt.Fprint(p.out, "Password: ")
	password, err := p.readPassword()
	fmt.Fprintln(p.out)
	if err != nil {
		return domain.Credentials{Rejected: true}
	}

	return domain.Credentials{Username: username, Password: string(password)}
}
