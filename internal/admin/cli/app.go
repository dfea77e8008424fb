package cli

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/edora/internal/server/auth"
	"github.com/dmitrijs2005/edora/internal/server/config"
)

var ErrUsage = errors.New("usage: edora-admin <hash-password|gen-secret|token> [flags]")

const defaultSecretBytes = 32

// App runs a single edora-admin command.
type App struct {
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	stdinFd int
	getenv  func(string) string
}

func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		stdinFd: int(os.Stdin.Fd()),
		getenv:  os.Getenv,
	}
}

// Run dispatches args[0] to its command.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "hash-password":
		return a.hashPassword()
	case "gen-secret":
		return a.genSecret(args[1:])
	case "token":
		return a.issueToken(args[1:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

// hashPassword prints a bcrypt digest suitable for EDORA_ADMIN_PASSWORD_HASH.
func (a *App) hashPassword() error {
	pw, err := a.getPassword("Enter password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	defer wipe(pw)

	if len(pw) == 0 {
		return errors.New("password is empty")
	}

	if isTerminal(a.stdinFd) {
		confirm, err := a.getPassword("Repeat password: ")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		defer wipe(confirm)
		if !bytes.Equal(pw, confirm) {
			return errors.New("passwords do not match")
		}
	}

	digest, err := auth.HashPassword(string(pw))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, digest)
	return err
}

// genSecret prints n random bytes hex-encoded, for SECRET_KEY.
func (a *App) genSecret(args []string) error {
	fs := flag.NewFlagSet("gen-secret", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	n := fs.Int("n", defaultSecretBytes, "number of random bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 16 {
		return fmt.Errorf("secret must be at least 16 bytes, got %d", *n)
	}

	s, err := makeRandHexString(*n)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, s)
	return err
}

// issueToken prints a bearer token signed with the server secret.
func (a *App) issueToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	secret := fs.String("s", a.getenv(config.EnvSecretKey), "token signing secret")
	username := fs.String("u", "admin", "token subject")
	ttl := fs.Duration("t", auth.DefaultTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *secret == "" {
		return fmt.Errorf("secret is not set (-s or %s)", config.EnvSecretKey)
	}
	if *ttl <= 0 || *ttl > 24*time.Hour {
		return fmt.Errorf("ttl must be within (0, 24h], got %s", *ttl)
	}

	token, err := auth.NewTokenService([]byte(*secret), *ttl).Issue(*username, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, token)
	return err
}

func makeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
