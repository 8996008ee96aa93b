package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamenart/catalog-service/internal/catalogclient"
	"github.com/kamenart/catalog-service/internal/uniqueness"
)

var (
	checkNameBaseURL   string
	checkNameAPIKey    string
	checkNameExcludeID int64
	checkNameTimeout   time.Duration
	checkNameStdin     bool
	checkNameQuiet     time.Duration
)

// checkNameCmd represents the check-name command
var checkNameCmd = &cobra.Command{
	Use:   "check-name <name>",
	Short: "Check a product name against a running catalog service",
	Long: `Check whether a product name is free across every category of a
running catalog service. Names are compared case-insensitively after
whitespace normalization, the same way the admin form checks them.

With --stdin, names are read line by line and checked through the same
debounce the admin form uses: rapid successive lines supersede each other
and only the latest one within a quiet period is checked.`,
	Example: `  catalogctl check-name "Одиночный О-3" --base-url http://localhost:3000
  catalogctl check-name "Одиночный О-1" --exclude-id 5
  cat names.txt | catalogctl check-name --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckName,
}

func init() {
	rootCmd.AddCommand(checkNameCmd)

	checkNameCmd.Flags().StringVar(&checkNameBaseURL, "base-url", "http://localhost:3000", "Catalog service base URL")
	checkNameCmd.Flags().StringVar(&checkNameAPIKey, "api-key", os.Getenv("INTERNAL_API_KEY"), "Internal API key")
	checkNameCmd.Flags().Int64Var(&checkNameExcludeID, "exclude-id", 0, "Product id to exclude (when renaming)")
	checkNameCmd.Flags().DurationVar(&checkNameTimeout, "timeout", 30*time.Second, "Overall timeout")
	checkNameCmd.Flags().BoolVar(&checkNameStdin, "stdin", false, "Read candidate names from stdin, one per line, with debouncing")
	checkNameCmd.Flags().DurationVar(&checkNameQuiet, "quiet", 400*time.Millisecond, "Debounce quiet period for --stdin (config uniqueness.debounce_quiet overrides)")
}

func runCheckName(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkNameTimeout)
	defer cancel()

	client := catalogclient.New(checkNameBaseURL, checkNameAPIKey, catalogclient.DefaultConfig(), logger)
	checker := uniqueness.NewChecker(client, logger)

	var excludeID *int64
	if checkNameExcludeID > 0 {
		excludeID = &checkNameExcludeID
	}

	if checkNameStdin {
		quiet := checkNameQuiet
		if !cmd.Flags().Changed("quiet") && cfg != nil {
			quiet = cfg.Uniqueness.DebounceQuiet
		}
		return runCheckNameStream(ctx, checker, excludeID, quiet, os.Stdin, os.Stdout)
	}

	if len(args) != 1 {
		return fmt.Errorf("a name argument is required unless --stdin is given")
	}
	name := args[0]

	if checker.Check(ctx, name, excludeID) {
		fmt.Printf("%q is free\n", name)
		return nil
	}

	fmt.Printf("%q is already taken\n", name)
	os.Exit(1)
	return nil
}

// runCheckNameStream feeds input lines through the debouncer, so bursts of
// lines behave like keystrokes: only the last line of a burst is checked.
func runCheckNameStream(ctx context.Context, checker *uniqueness.Checker, excludeID *int64, quiet time.Duration, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	debouncer := uniqueness.NewDebouncer(checker, quiet, func(r uniqueness.Result) {
		mu.Lock()
		defer mu.Unlock()
		if r.Unique {
			fmt.Fprintf(out, "%q is free\n", r.Name)
		} else {
			fmt.Fprintf(out, "%q is already taken\n", r.Name)
		}
	})
	defer debouncer.Stop()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		debouncer.Schedule(ctx, name, excludeID)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read names: %w", err)
	}

	debouncer.Flush()
	return nil
}
