package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamURL(t *testing.T) {
	c := NewClient(0)
	assert.Equal(t,
		"https://www.sports-reference.com/cbb/schools/troy/men/2025.html",
		c.TeamURL("troy", 2025))
}

func TestFetchTeamPage(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient(0)
	c.baseURL = srv.URL

	html, url, err := c.FetchTeamPage(context.Background(), "troy", 2025)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, srv.URL+"/troy/men/2025.html", url)
	assert.Equal(t, "/troy/men/2025.html", gotPath)
	assert.Equal(t, UserAgent, gotUA)
}

func TestFetchTeamPageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(0)
	c.baseURL = srv.URL

	_, _, err := c.FetchTeamPage(context.Background(), "no-such-school", 2025)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "no-such-school", fetchErr.TeamSlug)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Error(), "HTTP 404")
}

func TestFetchTeamPageRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	delay := 50 * time.Millisecond
	c := NewClient(delay)
	c.baseURL = srv.URL

	start := time.Now()
	_, _, err := c.FetchTeamPage(context.Background(), "troy", 2025)
	require.NoError(t, err)
	_, _, err = c.FetchTeamPage(context.Background(), "south-alabama", 2025)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestFetchTeamPageDelayRespectsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(time.Hour)
	c.baseURL = srv.URL

	_, _, err := c.FetchTeamPage(context.Background(), "troy", 2025)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, _, err = c.FetchTeamPage(ctx, "south-alabama", 2025)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancelled fetch must not sit out the delay")
}
