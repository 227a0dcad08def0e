// Command hashpw reads a password from the terminal without echoing it and
// prints its bcrypt hash, for seeding accounts or config files.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dzavadskis/minimart/internal/server/auth"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
