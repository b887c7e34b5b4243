package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets is a minimal in-memory Sheets API.
type fakeSheets struct {
	tabs      map[string]int64
	written   map[string]int
	failGet   []int
	calls     []string
	batches   int
	nextSheet int64
	mu        sync.Mutex
}

func newFakeSheets(existing ...string) *fakeSheets {
	f := &fakeSheets{tabs: map[string]int64{}, written: map[string]int{}, nextSheet: 100}
	for i, title := range existing {
		f.tabs[title] = int64(i + 1)
	}
	return f
}

func (f *fakeSheets) sheetList() []map[string]any {
	out := make([]map[string]any, 0, len(f.tabs))
	for title, id := range f.tabs {
		out = append(out, map[string]any{"properties": map[string]any{"title": title, "sheetId": id}})
	}
	return out
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets")
	f.calls = append(f.calls, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	reply := func(v any) { _ = json.NewEncoder(w).Encode(v) }

	switch {
	case r.Method == http.MethodPost && path == "":
		var req sheets.Spreadsheet
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, s := range req.Sheets {
			f.nextSheet++
			f.tabs[s.Properties.Title] = f.nextSheet
		}
		reply(map[string]any{"spreadsheetId": "new-sheet", "spreadsheetUrl": "https://example.test", "sheets": f.sheetList()})

	case r.Method == http.MethodGet:
		if len(f.failGet) > 0 {
			code := f.failGet[0]
			f.failGet = f.failGet[1:]
			w.WriteHeader(code)
			reply(map[string]any{"error": map[string]any{"code": code, "message": http.StatusText(code)}})
			return
		}
		reply(map[string]any{"spreadsheetId": "existing", "sheets": f.sheetList()})

	case strings.HasSuffix(path, ":batchUpdate"):
		f.batches++
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		replies := make([]map[string]any, 0, len(req.Requests))
		for _, rq := range req.Requests {
			if rq.AddSheet != nil {
				f.nextSheet++
				f.tabs[rq.AddSheet.Properties.Title] = f.nextSheet
				replies = append(replies, map[string]any{"addSheet": map[string]any{
					"properties": map[string]any{"title": rq.AddSheet.Properties.Title, "sheetId": f.nextSheet},
				}})
				continue
			}
			replies = append(replies, map[string]any{})
		}
		reply(map[string]any{"replies": replies})

	case strings.HasSuffix(path, ":clear"):
		reply(map[string]any{})

	case r.Method == http.MethodPut:
		var vr sheets.ValueRange
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		title, _, _ := strings.Cut(vr.Range, "!")
		f.written[title] += len(vr.Values)
		reply(map[string]any{"updatedRows": len(vr.Values)})

	default:
		w.WriteHeader(http.StatusNotFound)
		reply(map[string]any{"error": map[string]any{"code": 404, "message": "unexpected " + r.Method + " " + path}})
	}
}

func (f *fakeSheets) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func newTestWriter(t *testing.T, fake *fakeSheets, mod func(*Config)) *Writer {
	t.Helper()

	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	config := DefaultConfig()
	config.RefreshToken = "unused"
	config.RetryDelay = time.Millisecond
	if mod != nil {
		mod(&config)
	}
	return newWriter(srv, config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	fake := newFakeSheets()
	w := newTestWriter(t, fake, nil)

	require.NoError(t, w.Write(context.Background(), testReport()))

	assert.Zero(t, fake.count("GET "))
	assert.Equal(t, "new-sheet", w.config.SpreadsheetID)
	assert.Len(t, fake.tabs, 4)
	assert.Equal(t, map[string]int{
		TabSummary:      8,
		TabMonthly:      13,
		TabHours:        14,
		TabTransactions: 3,
	}, fake.written)
	assert.Equal(t, 1, fake.batches, "formatting is one batch update")
}

func TestWriter_AddsMissingTabs(t *testing.T) {
	fake := newFakeSheets(TabSummary, "Notes")
	w := newTestWriter(t, fake, func(c *Config) {
		c.SpreadsheetID = "existing"
		c.EnableFormatting = false
	})

	require.NoError(t, w.Write(context.Background(), testReport()))

	assert.Equal(t, 1, fake.count("GET "))
	assert.Equal(t, 1, fake.batches, "one batch adds the three missing tabs")
	assert.Len(t, fake.tabs, 5)
	assert.Contains(t, fake.tabs, TabHours)
	assert.Equal(t, 4, fake.count("POST /existing/values/"), "every tab is cleared")
}

func TestWriter_Batches(t *testing.T) {
	fake := newFakeSheets()
	w := newTestWriter(t, fake, func(c *Config) {
		c.BatchSize = 5
		c.EnableFormatting = false
	})

	require.NoError(t, w.Write(context.Background(), testReport()))

	// 8, 13, 14 and 3 rows in batches of five
	assert.Equal(t, 2+3+3+1, fake.count("PUT "))
	assert.Equal(t, 14, fake.written[TabHours])
}

func TestWriter_RetriesServerErrors(t *testing.T) {
	fake := newFakeSheets(TabSummary, TabMonthly, TabHours, TabTransactions)
	fake.failGet = []int{http.StatusServiceUnavailable}
	w := newTestWriter(t, fake, func(c *Config) {
		c.SpreadsheetID = "existing"
		c.EnableFormatting = false
	})

	require.NoError(t, w.Write(context.Background(), testReport()))
	assert.Equal(t, 2, fake.count("GET "))
}

func TestWriter_ClientErrorsAreNotRetried(t *testing.T) {
	fake := newFakeSheets()
	fake.failGet = []int{http.StatusForbidden, http.StatusForbidden, http.StatusForbidden}
	w := newTestWriter(t, fake, func(c *Config) {
		c.SpreadsheetID = "existing"
	})

	err := w.Write(context.Background(), testReport())
	require.Error(t, err)
	assert.Equal(t, 1, fake.count("GET "))
	assert.False(t, common.IsRetryable(err))
}

func TestWriter_NilReport(t *testing.T) {
	w := newTestWriter(t, newFakeSheets(), nil)
	err := w.Write(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestClassify(t *testing.T) {
	plain := fmt.Errorf("boom")
	assert.Equal(t, plain, classify(plain))
	assert.NoError(t, classify(nil))
}
