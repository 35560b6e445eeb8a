package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-techstack/internal/config"
	"github.com/naka-gawa/github-techstack/internal/render"
	"github.com/naka-gawa/github-techstack/internal/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Searches each username typed on standard input",
	Long: `Reads usernames from standard input, one per line, and searches each one.
Entering a new username abandons the search still in flight: only the result
of the latest entry is printed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runWatch(ctx, a, os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runWatch runs one search per input line and prints only outcomes that are still the latest.
// It returns at end of input or as soon as ctx is cancelled, without waiting for more input.
func runWatch(ctx context.Context, a *app, in io.Reader, stdout, stderr io.Writer) error {
	var latest usecase.Latest

	var (
		wg sync.WaitGroup
		// printMu orders the latest-check and the printing of an outcome as one step.
		printMu sync.Mutex
	)
	defer wg.Wait()
	defer latest.Close()

	fmt.Fprintln(stderr, "Enter a GitHub username (Ctrl-D to quit):")
	lines, scanErr := scanLines(ctx, in)
	for {
		var username string
		select {
		case <-ctx.Done():
			a.logger.Println("Watch interrupted.")
			return nil
		case line, ok := <-lines:
			if !ok {
				// End of input: let the search in flight finish.
				wg.Wait()
				return <-scanErr
			}
			username = line
		}

		token, searchCtx := latest.Begin(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := a.searcher.SearchWithToken(searchCtx, token, username)
			outcome := usecase.Outcome{Token: token, Username: username, Result: result, Err: err}

			printMu.Lock()
			defer printMu.Unlock()
			if ctx.Err() != nil || !latest.Offer(outcome) {
				a.logger.Printf("Discarding result of search #%d.\n", token)
				return
			}
			if a.cfg.Output.Format == config.FormatJSON {
				_ = render.JSON(stdout, jsonPayload([]usecase.Outcome{outcome}))
				return
			}
			printOutcome(a, outcome, stdout, stderr)
		}()
	}
}

// scanLines reads in line by line on its own goroutine, so a blocked read never holds up
// cancellation. lines is closed at end of input, after which scanErr yields the read error.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addOutputFlags(watchCmd)
}
