package explore

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

func TestFindFilesDotfileHeuristic(t *testing.T) {
	e := newTestExplorer(t, map[string]string{
		"/project/README.md":                           "legacy",
		"/project/big_log.log":                         "Log line...\n",
		"/project/src/config/legacy/.env.production":   "STRIPE_API_KEY=sk_live_1\n",
		"/project/node_modules/dotenv/.env.production": "ignored",
	})

	res := e.FindFiles("/project", "*.env", 0)
	require.Equal(t, errors.KindOK, res.Kind)
	assert.Equal(t, "src/config/legacy/.env.production (0.0 KB)", res.Text)
}

func TestFindFilesTruncates(t *testing.T) {
	files := map[string]string{}
	for i := range 25 {
		files[fmt.Sprintf("/root/d%d/f%02d.txt", i%3, i)] = "x"
	}
	e := newTestExplorer(t, files)

	res := e.FindFiles("/root", "*.txt", 0)
	lines := strings.Split(res.Text, "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "... truncated at 20 results; narrow the pattern or directory", lines[20])

	res = e.FindFiles("/root", "*.txt", 4)
	lines = strings.Split(res.Text, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "d0/f00.txt (0.0 KB)", lines[0])
	assert.True(t, strings.HasPrefix(lines[4], "... truncated at 4 results"))

	// The walk stops at the cap without looking further, so an exact fit is also reported as truncated.
	res = e.FindFiles("/root", "*.txt", 25)
	lines = strings.Split(res.Text, "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, "... truncated at 25 results; narrow the pattern or directory", lines[25])
}

func TestFindFilesDefaults(t *testing.T) {
	e := New(DefaultPolicy(), WithFs(newTestFs(t, map[string]string{
		"/work/a.txt":   "aaaa",
		"/work/b/c.txt": strings.Repeat("c", 1536),
	})))

	res := e.FindFiles("/work", "", 0)
	assert.Equal(t, "a.txt (0.0 KB)\nb/c.txt (1.5 KB)", res.Text)
}

func TestFindFilesNoMatch(t *testing.T) {
	e := newTestExplorer(t, map[string]string{"/root/a.txt": "a"})

	res := e.FindFiles("/root", "*.go", 0)
	assert.Equal(t, errors.KindNoResult, res.Kind)
	assert.Equal(t, "No files found for pattern '*.go'.", res.Text)
}

func TestFindFilesErrors(t *testing.T) {
	e := newTestExplorer(t, map[string]string{"/root/a.txt": "a"})

	res := e.FindFiles("/missing", "*", 0)
	assert.Equal(t, errors.KindNotFound, res.Kind)

	res = e.FindFiles("/root", "[", 0)
	assert.Equal(t, errors.KindInvalidPattern, res.Kind)
	assert.True(t, strings.HasPrefix(res.Text, "Error: invalid glob pattern '['"))
}
