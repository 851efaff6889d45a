// passgen generates cryptographically random passwords from character-class
// policies:
//   - lowercase, uppercase, numbers and symbols, each optional
//   - at least one character from every enabled class
//   - per-character exclusions and an ambiguous-character filter
//   - unbiased draws from the system CSPRNG, then a Fisher-Yates shuffle
//
// Usage: passgen [--length N] [--count N] [--exclude CHARS] [--no-ambiguous] ...

package main

import "passgen/internal/cli"

// version is the application version printed by --version.
const version = "v1.0.0"

func main() {
	cli.Execute(version)
}
