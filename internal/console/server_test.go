package console

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/callebjorkell/lcd1602/internal/lcd"
	"github.com/callebjorkell/lcd1602/internal/pins/pinstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recording struct {
	r      *pinstest.Recorder
	shared *lcd.Shared
}

// writes reads the recording under the display lock, since handlers run on
// other goroutines.
func (rec recording) writes() []pinstest.Write {
	var w []pinstest.Write
	rec.shared.Do(func(*lcd.Driver) error {
		w = rec.r.Writes()
		return nil
	})
	return w
}

func (rec recording) ops() int {
	var n int
	rec.shared.Do(func(*lcd.Driver) error {
		n = len(rec.r.Ops)
		return nil
	})
	return n
}

func newTestServer(t *testing.T) (*httptest.Server, recording) {
	t.Helper()
	r := pinstest.NewRecorder()
	d := lcd.New(r)
	require.NoError(t, d.Enable())
	r.Reset()

	shared := lcd.NewShared(d)
	s := NewServer(":0", New(shared))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, recording{r: r, shared: shared}
}

func post(t *testing.T, ts *httptest.Server, command string) (int, string) {
	t.Helper()
	resp, err := http.PostForm(ts.URL+"/command", url.Values{"command": {command}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_Form(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `name="command"`)

	resp2, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestServer_Command(t *testing.T) {
	ts, r := newTestServer(t)

	code, body := post(t, ts, "lcd-loc 5 1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Location set to 5,1\n", body)

	code, body = post(t, ts, "lcd-put 0x41")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Put 0x41\n", body)

	assert.Equal(t, []pinstest.Write{instr(0xc5), data(0x41)}, r.writes())
}

func TestServer_BadRequests(t *testing.T) {
	ts, r := newTestServer(t)

	code, _ := post(t, ts, "lcd-put banana")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = post(t, ts, "lcd-dance")
	assert.Equal(t, http.StatusBadRequest, code)

	resp, err := http.Post(ts.URL+"/command", "text/plain", strings.NewReader("lcd-clear"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/command")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	assert.Equal(t, 0, r.ops())
}

func TestServer_ConcurrentPrints(t *testing.T) {
	ts, r := newTestServer(t)

	var wg sync.WaitGroup
	for _, msg := range []string{"aaaa", "bbbb", "cccc", "dddd"} {
		wg.Add(1)
		go func(msg string) {
			defer wg.Done()
			resp, err := http.PostForm(ts.URL+"/command", url.Values{"command": {"lcd-print " + msg}})
			if assert.NoError(t, err) {
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}(msg)
	}
	wg.Wait()

	writes := r.writes()
	require.Len(t, writes, 16)
	for i := 0; i < len(writes); i += 4 {
		for j := 1; j < 4; j++ {
			assert.Equal(t, writes[i].Value, writes[i+j].Value, "print at %d was interleaved", i)
		}
	}
}
