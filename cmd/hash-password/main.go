// Command hash-password prints bcrypt hashes for seeding users or resetting
// a password by hand. Passwords are taken from the arguments or, when none
// are given, one per line from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		if passwords, err = readLines(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	if failed := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), passwords); failed > 0 {
		os.Exit(1)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// hashAll writes one hash line per password and returns the number of
// passwords that could not be hashed.
func hashAll(w io.Writer, hasher auth.PasswordHasher, passwords []string) int {
	failed := 0
	for _, password := range passwords {
		if msg := domain.PasswordProblem(password); msg != "" {
			fmt.Fprintf(w, "Error: %s\n", msg)
			failed++
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(w, "Error generating hash: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintln(w, hash)
	}
	return failed
}
