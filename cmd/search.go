package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-techstack/internal/config"
	"github.com/naka-gawa/github-techstack/internal/domain"
	"github.com/naka-gawa/github-techstack/internal/render"
	"github.com/naka-gawa/github-techstack/internal/usecase"
)

var searchCmd = &cobra.Command{
	Use:   "search <username>...",
	Short: "Summarizes GitHub users' profiles and tech stacks",
	Long: `Fetches the public profile and up to 100 most recently updated repositories of
each given GitHub user, then prints a tech stack (languages weighted by stars,
forks excluded) and the most popular repositories. Several users are searched
concurrently.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(runSearch(context.Background(), a, args, os.Stdout, os.Stderr))
	},
}

// outcomeView is the JSON shape of one search in batch output.
type outcomeView struct {
	Username string               `json:"username"`
	Result   *domain.SearchResult `json:"result,omitempty"`
	Error    *render.ErrorView    `json:"error,omitempty"`
}

// runSearch searches every username and prints the outcomes. It returns the process exit code.
func runSearch(ctx context.Context, a *app, usernames []string, stdout, stderr io.Writer) int {
	outcomes := a.searcher.SearchAll(ctx, usernames, a.cfg.Search.Concurrency)

	exitCode := 0
	for _, o := range outcomes {
		if o.Err != nil {
			exitCode = 1
		}
	}

	if a.cfg.Output.Format == config.FormatJSON {
		if err := render.JSON(stdout, jsonPayload(outcomes)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return exitCode
	}

	for i, o := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "== %s ==\n", o.Username)
		}
		printOutcome(a, o, stdout, stderr)
	}
	return exitCode
}

// jsonPayload keeps single searches flat: the result itself, or the error view.
func jsonPayload(outcomes []usecase.Outcome) any {
	if len(outcomes) == 1 {
		o := outcomes[0]
		if o.Err != nil {
			return render.NewErrorView(o.Err)
		}
		return o.Result
	}
	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		view := outcomeView{Username: o.Username, Result: o.Result}
		if o.Err != nil {
			errView := render.NewErrorView(o.Err)
			view.Error = &errView
		}
		views = append(views, view)
	}
	return views
}

// printOutcome prints a result as text, or its error on stderr.
func printOutcome(a *app, o usecase.Outcome, stdout, stderr io.Writer) {
	if o.Err != nil {
		a.logger.Printf("Search #%d failed: %v\n", o.Token, o.Err)
		_ = render.Error(stderr, o.Err, a.renderOptions())
		return
	}
	if err := render.Text(stdout, o.Result, a.renderOptions()); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write output: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addOutputFlags(searchCmd)
	searchCmd.Flags().IntP("concurrency", "c", 4, "Maximum number of users searched at once")
}
