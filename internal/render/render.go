// Package render presents search results and errors on a terminal.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/naka-gawa/github-techstack/internal/domain"
)

// Placeholders shown instead of empty sections and fields.
const (
	MsgNoLanguages    = "No language data available"
	MsgNoRepositories = "No repositories found"
	MsgNoBio          = "No bio available"
	MsgNoDescription  = "No description available"
)

const (
	barWidth          = 20
	barRune           = "█"
	maxDescriptionLen = 60
)

// Options controls text rendering.
type Options struct {
	// NoColor turns ANSI colors off. Otherwise fatih/color decides from the
	// terminal and the NO_COLOR environment variable.
	NoColor bool
}

// ErrorView is the JSON shape of a failed search.
type ErrorView struct {
	Kind       domain.ErrorKind `json:"kind"`
	Message    string           `json:"message"`
	StatusCode int              `json:"status_code,omitempty"`
}

// NewErrorView describes err for JSON output.
func NewErrorView(err error) ErrorView {
	view := ErrorView{Kind: domain.KindOf(err), Message: domain.UserMessage(err)}
	var searchErr *domain.SearchError
	if errors.As(err, &searchErr) {
		view.StatusCode = searchErr.StatusCode
	}
	return view
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// Text writes a human-readable report of result.
func Text(w io.Writer, result *domain.SearchResult, opts Options) error {
	var b strings.Builder

	writeProfile(&b, result, opts)
	b.WriteString("\n")
	writeTechStack(&b, result.TechStack, opts)
	b.WriteString("\n")
	writeRepositories(&b, result.TopRepositories)

	_, err := io.WriteString(w, b.String())
	return err
}

// Error writes the single user-facing sentence for err.
func Error(w io.Writer, err error, opts Options) error {
	red := color.New(color.FgRed)
	setColor(red, opts)
	_, writeErr := fmt.Fprintln(w, red.Sprint("Error: ")+domain.UserMessage(err))
	return writeErr
}

func writeProfile(b *strings.Builder, result *domain.SearchResult, opts Options) {
	profile := result.Profile
	bold := color.New(color.Bold)
	setColor(bold, opts)

	fmt.Fprintf(b, "%s (@%s)\n", bold.Sprint(profile.DisplayName()), profile.Login)
	bio := profile.Bio
	if bio == "" {
		bio = MsgNoBio
	}
	fmt.Fprintln(b, bio)
	if profile.HTMLURL != "" {
		fmt.Fprintln(b, profile.HTMLURL)
	}
	fmt.Fprintf(b, "Followers %s · Following %s · Repositories %s\n",
		humanize.Comma(int64(profile.Followers)),
		humanize.Comma(int64(profile.Following)),
		humanize.Comma(int64(profile.PublicRepos)),
	)
	summary := result.Summary
	fmt.Fprintf(b, "Stars %s · Forks %s · Median stars %s · Languages %d\n",
		humanize.Comma(int64(summary.TotalStars)),
		humanize.Comma(int64(summary.TotalForks)),
		strconv.FormatFloat(summary.MedianStars, 'f', -1, 64),
		summary.Languages,
	)
}

func writeTechStack(b *strings.Builder, techStack []domain.TechStackEntry, opts Options) {
	b.WriteString("Tech stack\n")
	if len(techStack) == 0 {
		b.WriteString(MsgNoLanguages + "\n")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Language", "Repos", "Share", ""})
	for _, entry := range techStack {
		tw.AppendRow(table.Row{
			entry.Language,
			entry.Count,
			fmt.Sprintf("%.1f%%", entry.Percentage),
			bar(entry, opts),
		})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n")
}

func writeRepositories(b *strings.Builder, repos []domain.Repository) {
	b.WriteString("Top repositories\n")
	if len(repos) == 0 {
		b.WriteString(MsgNoRepositories + "\n")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Language", "Stars", "Forks", "Updated", "Description"})
	for _, repo := range repos {
		tw.AppendRow(table.Row{
			repo.Name,
			repo.Language,
			humanize.Comma(int64(repo.StargazersCount)),
			humanize.Comma(int64(repo.ForksCount)),
			updated(repo),
			description(repo),
		})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n")
}

func updated(repo domain.Repository) string {
	if repo.UpdatedAt.IsZero() {
		return "-"
	}
	return humanize.Time(repo.UpdatedAt)
}

func description(repo domain.Repository) string {
	if repo.Description == "" {
		return MsgNoDescription
	}
	runes := []rune(repo.Description)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen-1]) + "…"
	}
	return repo.Description
}

// bar draws the entry's share as a block bar in the entry's color.
func bar(entry domain.TechStackEntry, opts Options) string {
	n := int(math.Round(entry.Percentage / 100 * barWidth))
	if n == 0 && entry.Percentage > 0 {
		n = 1
	}
	blocks := strings.Repeat(barRune, n)

	r, g, bl, ok := parseHexColor(entry.Color)
	if !ok {
		return blocks
	}
	c := color.RGB(r, g, bl)
	setColor(c, opts)
	return c.Sprint(blocks)
}

func setColor(c *color.Color, opts Options) {
	if opts.NoColor {
		c.DisableColor()
	}
}

// parseHexColor parses #rgb and #rrggbb.
func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
