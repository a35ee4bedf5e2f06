package main

import (
	"fmt"
	"os"
	"strings"

	"snipman/internal/cli"
)

func isClipID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "clip_") {
		return false
	}
	return len(s) > len("clip_")
}

// rewriteDirectClipLookupArgs turns `snipman <clip-id>` into
// `snipman clips show <clip-id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so the first positional token is located rather than argv[1].
func rewriteDirectClipLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the clip id is
	// never swallowed.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(at int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, "clips", "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isClipID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			switch {
			case strings.Contains(a, "="), boolFlags[a]:
			case valueFlags[a]:
				i++
			}
			continue
		}

		if isClipID(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	if err := cli.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "snipman: .env:", err)
	}

	os.Args = rewriteDirectClipLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
