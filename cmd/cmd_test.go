package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-techstack/internal/config"
	"github.com/naka-gawa/github-techstack/internal/domain"
	"github.com/naka-gawa/github-techstack/internal/render"
)

// newFakeGitHub serves profiles and repositories for the given logins; anything else is a 404.
func newFakeGitHub(t *testing.T, users map[string]string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{login}", func(w http.ResponseWriter, r *http.Request) {
		login := r.PathValue("login")
		if _, ok := users[login]; !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		fmt.Fprintf(w, `{"login": %q, "followers": 1, "following": 2, "public_repos": 1}`, login)
	})
	mux.HandleFunc("GET /users/{login}/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, users[r.PathValue("login")])
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestApp(t *testing.T, baseURL, format string) *app {
	cfg := &config.Config{
		API:         config.APIConfig{BaseURL: baseURL, UserAgent: "techstack-test", Timeout: 5 * time.Second},
		Aggregation: config.AggregationConfig{TopLanguages: 10},
		Ranking:     config.RankingConfig{TopRepositories: 12},
		Search:      config.SearchConfig{Concurrency: 2},
		Output:      config.OutputConfig{Format: format},
	}
	require.NoError(t, cfg.Validate())

	a, err := newAppFromConfig(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return a
}

const octocatRepos = `[
  {"name": "hello-world", "language": "Go", "stargazers_count": 5, "forks_count": 1},
  {"name": "scripts", "language": "Shell", "stargazers_count": 0},
  {"name": "forked", "language": "Rust", "stargazers_count": 99, "fork": true}
]`

func TestRunSearch_Text(t *testing.T) {
	server := newFakeGitHub(t, map[string]string{"octocat": octocatRepos})
	a := newTestApp(t, server.URL, config.FormatText)
	var stdout, stderr bytes.Buffer

	code := runSearch(context.Background(), a, []string{"octocat"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "octocat (@octocat)")
	assert.Contains(t, stdout.String(), "85.7%")
	assert.Contains(t, stdout.String(), "14.3%")
	assert.Contains(t, stdout.String(), "forked")
}

func TestRunSearch_JSONNotFound(t *testing.T) {
	server := newFakeGitHub(t, map[string]string{})
	a := newTestApp(t, server.URL, config.FormatJSON)
	var stdout, stderr bytes.Buffer

	code := runSearch(context.Background(), a, []string{"ghost"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	var view render.ErrorView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &view))
	assert.Equal(t, domain.KindNotFound, view.Kind)
	assert.Equal(t, domain.MsgNotFound, view.Message)
}

func TestRunSearch_Batch(t *testing.T) {
	server := newFakeGitHub(t, map[string]string{"octocat": octocatRepos, "empty": `[]`})
	a := newTestApp(t, server.URL, config.FormatJSON)
	var stdout, stderr bytes.Buffer

	code := runSearch(context.Background(), a, []string{"octocat", "ghost", "empty"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	var views []outcomeView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "octocat", views[0].Username)
	require.NotNil(t, views[0].Result)
	require.Len(t, views[0].Result.TechStack, 2)
	assert.Equal(t, "Go", views[0].Result.TechStack[0].Language)
	require.NotNil(t, views[1].Error)
	assert.Equal(t, domain.KindNotFound, views[1].Error.Kind)
	require.NotNil(t, views[2].Result)
	assert.Empty(t, views[2].Result.TechStack)
}

func TestRunSearch_TextError(t *testing.T) {
	server := newFakeGitHub(t, map[string]string{})
	a := newTestApp(t, server.URL, config.FormatText)
	var stdout, stderr bytes.Buffer

	code := runSearch(context.Background(), a, []string{"   "}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error: "+domain.MsgEmptyUsername+"\n", stderr.String())
}

func TestRunWatch_PrintsOnlyLatest(t *testing.T) {
	aliceArrived := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/alice", func(w http.ResponseWriter, r *http.Request) {
		close(aliceArrived)
		// Hold the response until the client abandons the request.
		<-r.Context().Done()
	})
	mux.HandleFunc("GET /users/bob", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "bob"}`)
	})
	mux.HandleFunc("GET /users/bob/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "bobs-repo", "language": "Go"}]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	a := newTestApp(t, server.URL, config.FormatText)
	in, inWriter := io.Pipe()
	var stdout, stderr bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(context.Background(), a, in, &stdout, &stderr)
	}()

	_, err := io.WriteString(inWriter, "alice\n")
	require.NoError(t, err)
	<-aliceArrived
	_, err = io.WriteString(inWriter, "bob\n")
	require.NoError(t, err)
	require.NoError(t, inWriter.Close())

	require.NoError(t, <-done)
	assert.Contains(t, stdout.String(), "bob (@bob)")
	assert.NotContains(t, stdout.String(), "alice")
	assert.NotContains(t, stderr.String(), domain.MsgTransport)
}

func TestRunWatch_ReturnsWhenCancelled(t *testing.T) {
	server := newFakeGitHub(t, map[string]string{"octocat": octocatRepos})
	a := newTestApp(t, server.URL, config.FormatText)
	in, inWriter := io.Pipe()
	defer inWriter.Close()
	var stdout, stderr bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, a, in, &stdout, &stderr)
	}()

	// Input stays open: only the cancellation can end the loop.
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not return after its context was cancelled")
	}

	// A line typed afterwards starts no search.
	_, err := io.WriteString(inWriter, "octocat\n")
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), domain.MsgTransport)
}

func TestRunWatch_CancelAbandonsSearchInFlight(t *testing.T) {
	arrived := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/slowpoke", func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-r.Context().Done()
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	a := newTestApp(t, server.URL, config.FormatText)
	in, inWriter := io.Pipe()
	defer inWriter.Close()
	var stdout, stderr bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, a, in, &stdout, &stderr)
	}()

	_, err := io.WriteString(inWriter, "slowpoke\n")
	require.NoError(t, err)
	<-arrived
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not return after its context was cancelled")
	}
	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), domain.MsgTransport)
}

func TestPrintColors(t *testing.T) {
	a := newTestApp(t, "http://localhost/", config.FormatText)
	a.colors = a.colors.WithOverrides(map[string]string{"go": "#000000"}, "")
	var out bytes.Buffer

	printColors(a, &out)

	assert.Contains(t, out.String(), "Jupyter Notebook")
	assert.Contains(t, out.String(), "#000000")
	assert.Contains(t, out.String(), "#6f42c1")
}
