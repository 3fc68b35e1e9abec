package transcriber

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cenkalti/backoff"
	"github.com/stretchr/testify/assert"
)

type testBackoffProvider struct {
}

func (bp *testBackoffProvider) Get() backoff.BackOff {
	return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
}

type testHandler struct {
	lock  sync.Mutex
	code  int
	resp  string
	calls int
	forms map[string]string
}

func (h *testHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.calls++
	if err := req.ParseMultipartForm(1 << 20); err == nil {
		h.forms = map[string]string{}
		for k, v := range req.MultipartForm.Value {
			h.forms[k] = v[0]
		}
	}
	rw.WriteHeader(h.code)
	rw.Write([]byte(h.resp))
}

func initTranscriberServer(t *testing.T, h *testHandler) (*HTTPTranscriber, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	tr := HTTPTranscriber{httpclient: server.Client(), url: server.URL,
		bp: &testBackoffProvider{}}
	return &tr, server
}

func newAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.wav")
	assert.Nil(t, os.WriteFile(path, []byte("audio"), 0666))
	return path
}

func TestTranscribe(t *testing.T) {
	h := &testHandler{code: 200, resp: `{"text":"recognized"}`}
	tr, server := initTranscriberServer(t, h)
	defer server.Close()

	res, err := tr.Transcribe(newAudioFile(t), "en-US")

	assert.Nil(t, err)
	assert.Equal(t, "recognized", res)
	assert.Equal(t, "en-US", h.forms["language"])
}

func TestTranscribe_FailsOnMissingFile(t *testing.T) {
	h := &testHandler{code: 200, resp: `{"text":"recognized"}`}
	tr, server := initTranscriberServer(t, h)
	defer server.Close()

	_, err := tr.Transcribe("/missing/a.wav", "en-US")

	assert.NotNil(t, err)
	assert.Equal(t, 0, h.calls)
}

func TestTranscribe_Retries(t *testing.T) {
	h := &testHandler{code: 500, resp: "error"}
	tr, server := initTranscriberServer(t, h)
	defer server.Close()

	_, err := tr.Transcribe(newAudioFile(t), "en-US")

	assert.NotNil(t, err)
	assert.Equal(t, 3, h.calls)
}

func TestTranscribe_NoRetryOnWrongCall(t *testing.T) {
	h := &testHandler{code: 400, resp: "bad audio"}
	tr, server := initTranscriberServer(t, h)
	defer server.Close()

	_, err := tr.Transcribe(newAudioFile(t), "en-US")

	assert.NotNil(t, err)
	assert.Equal(t, 1, h.calls)
}

type testJSONHandler struct {
	lock  sync.Mutex
	code  int
	resp  string
	calls int
	body  string
	auth  string
}

func (h *testJSONHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.calls++
	b := make([]byte, req.ContentLength)
	req.Body.Read(b)
	h.body = string(b)
	h.auth = req.Header.Get("Authorization")
	rw.WriteHeader(h.code)
	rw.Write([]byte(h.resp))
}

func TestTranslate(t *testing.T) {
	h := &testJSONHandler{code: 200, resp: `{"text":"translated"}`}
	server := httptest.NewServer(h)
	defer server.Close()
	tr := HTTPTranslator{httpclient: server.Client(), url: server.URL,
		bp: &testBackoffProvider{}}

	res, err := tr.Translate("text", "en-US", "es-ES")

	assert.Nil(t, err)
	assert.Equal(t, "translated", res)
	assert.Contains(t, h.body, `"target_language":"es-ES"`)
}

func TestTranslate_Retries(t *testing.T) {
	h := &testJSONHandler{code: 503, resp: "busy"}
	server := httptest.NewServer(h)
	defer server.Close()
	tr := HTTPTranslator{httpclient: server.Client(), url: server.URL,
		bp: &testBackoffProvider{}}

	_, err := tr.Translate("text", "en-US", "es-ES")

	assert.NotNil(t, err)
	assert.Equal(t, 3, h.calls)
}

func TestCloudTranslate_SendsKey(t *testing.T) {
	h := &testJSONHandler{code: 200, resp: `{"text":"translated"}`}
	server := httptest.NewServer(h)
	defer server.Close()
	tr := CloudTranslator{httpclient: server.Client(), url: server.URL,
		key: "secret", model: "m1", bp: &testBackoffProvider{}}

	res, err := tr.Translate("text", "en-US", "es-ES")

	assert.Nil(t, err)
	assert.Equal(t, "translated", res)
	assert.Equal(t, "Bearer secret", h.auth)
	assert.Contains(t, h.body, `"model":"m1"`)
}
