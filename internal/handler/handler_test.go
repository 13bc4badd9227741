package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apolaki-ghub/Project3/internal/analysis"
	"github.com/apolaki-ghub/Project3/internal/auth"
	"github.com/apolaki-ghub/Project3/internal/events"
	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/sentiment"
	"github.com/apolaki-ghub/Project3/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, _ string) (string, error) {
	if errors.Is(s.err, context.DeadlineExceeded) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.transcript, s.err
}

type stubScorer struct {
	assessment sentiment.Assessment
	err        error
	texts      []string
}

func (s *stubScorer) AnalyzeSentiment(_ context.Context, text string) (sentiment.Assessment, error) {
	s.texts = append(s.texts, text)
	return s.assessment, s.err
}

type stubSynthesizer struct {
	audio []byte
	err   error
}

func (s *stubSynthesizer) Synthesize(context.Context, string) ([]byte, error) {
	return s.audio, s.err
}

type memoryHistory struct {
	entries []models.ReportEntry
}

func (m *memoryHistory) Add(_ context.Context, entry *models.ReportEntry) error {
	m.entries = append([]models.ReportEntry{*entry}, m.entries...)
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]models.ReportEntry, error) {
	if limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *memoryHistory) Ping(context.Context) error { return nil }

type testServer struct {
	router      *gin.Engine
	store       *storage.RecordingStore
	transcriber *stubTranscriber
	scorer      *stubScorer
	synthesizer *stubSynthesizer
	history     *memoryHistory
	hub         *events.Hub
	now         time.Time
}

type serverOption func(*testServer, *Dependencies)

func withIssuer(issuer *auth.Issuer) serverOption {
	return func(_ *testServer, deps *Dependencies) { deps.Issuer = issuer }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	store, err := storage.NewRecordingStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	ts := &testServer{
		store:       store,
		transcriber: &stubTranscriber{transcript: "the stale smell of old beer lingers"},
		scorer:      &stubScorer{assessment: sentiment.Assessment{Score: -0.9, Magnitude: 1.2}},
		synthesizer: &stubSynthesizer{audio: []byte("RIFF-synth")},
		history:     &memoryHistory{},
		hub:         events.NewHub(4),
		now:         time.Date(2024, 6, 1, 10, 15, 30, 0, time.Local),
	}

	service := analysis.NewService(analysis.Options{
		Store:       store,
		Analyzer:    analysis.NewPipelineAnalyzer(analysis.BackendGoogle, ts.transcriber, ts.scorer, 50*time.Millisecond, time.Second),
		Synthesizer: ts.synthesizer,
		Scorer:      ts.scorer,
		Index:       ts.history,
		Publisher:   ts.hub,
		Timeouts:    analysis.Timeouts{Sentiment: time.Second, Synthesize: time.Second},
		Now:         func() time.Time { return ts.now },
	})

	deps := Dependencies{
		Store:          store,
		Service:        service,
		History:        ts.history,
		Hub:            ts.hub,
		MaxUploadBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(ts, &deps)
	}

	router, err := NewRouter(New(deps), RouterOptions{})
	require.NoError(t, err)
	ts.router = router
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(ts.store.Root())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func multipartUpload(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("other", "value"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF-sample")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.ElementsMatch(t, []string{"20240601-101530AM.wav", "20240601-101530AM.wav.txt"}, ts.files(t))

	report, err := os.ReadFile(filepath.Join(ts.store.Root(), "20240601-101530AM.wav.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"the stale smell of old beer lingers\n\nDocument Score: -0.9\nDocument Magnitude: 1.2\nSentiment - NEGATIVE\n",
		string(report))
	require.Len(t, ts.history.entries, 1)
}

func TestUploadMissingField(t *testing.T) {
	tests := []struct {
		name     string
		request  func(t *testing.T) *http.Request
		expected string
	}{
		{
			name: "no audio field",
			request: func(t *testing.T) *http.Request {
				return multipartUpload(t, "", "", nil)
			},
			expected: "No audio data",
		},
		{
			name: "empty filename",
			request: func(t *testing.T) *http.Request {
				return multipartUpload(t, "audio_data", "", []byte("RIFF"))
			},
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/upload", nil)
			},
			expected: "No audio data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			w := ts.do(tt.request(t))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.Empty(t, ts.files(t))
			assert.Contains(t, w.Header().Get("Set-Cookie"), "flash=")
			if tt.expected != "" {
				assert.Contains(t, w.Header().Get("Set-Cookie"), "flash="+url.QueryEscape(tt.expected))
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartUpload(t, "audio_data", "big.wav", bytes.Repeat([]byte("x"), 2<<20)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, ts.files(t))
	assert.Empty(t, ts.history.entries)
}

func TestUploadAnalysisErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(ts *testServer)
		status  int
		stage   string
		timeout bool
	}{
		{
			name:   "transcription failure",
			setup:  func(ts *testServer) { ts.transcriber.err = errors.New("quota exceeded") },
			status: http.StatusBadGateway,
			stage:  "transcribe",
		},
		{
			name:    "transcription timeout",
			setup:   func(ts *testServer) { ts.transcriber.err = context.DeadlineExceeded },
			status:  http.StatusGatewayTimeout,
			stage:   "transcribe",
			timeout: true,
		},
		{
			name:   "sentiment failure",
			setup:  func(ts *testServer) { ts.scorer.err = errors.New("unavailable") },
			status: http.StatusBadGateway,
			stage:  "sentiment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.setup(ts)

			w := ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF")))
			assert.Equal(t, tt.status, w.Code)

			var resp AnalysisErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.stage, resp.Stage)
			assert.Equal(t, tt.timeout, resp.Timeout)
			assert.Equal(t, "20240601-101530AM.wav", resp.Recording)

			assert.Equal(t, []string{"20240601-101530AM.wav"}, ts.files(t))
			assert.Empty(t, ts.history.entries)
		})
	}
}

func TestUploadText(t *testing.T) {
	ts := newTestServer(t)
	ts.scorer.assessment = sentiment.Assessment{Score: 0.8, Magnitude: 1.5}

	form := url.Values{"text": {"I am delighted with the results"}}
	req := httptest.NewRequest(http.MethodPost, "/upload_text", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := ts.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.ElementsMatch(t, []string{"20240601-101530AM.wav", "20240601-101530AM.wav.txt"}, ts.files(t))
	assert.Equal(t, []string{"I am delighted with the results"}, ts.scorer.texts)

	audio, err := os.ReadFile(filepath.Join(ts.store.Root(), "20240601-101530AM.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF-synth", string(audio))

	report, err := os.ReadFile(filepath.Join(ts.store.Root(), "20240601-101530AM.wav.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "I am delighted with the results\n\n"))
	assert.Contains(t, string(report), "Sentiment - POSITIVE")
}

func TestUploadTextEmpty(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload_text", strings.NewReader("text=+++"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := ts.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, ts.files(t))
}

func TestUploadTextSynthesisFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.synthesizer.err = errors.New("voice not found")

	req := httptest.NewRequest(http.MethodPost, "/upload_text", strings.NewReader("text=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := ts.do(req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp AnalysisErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "synthesize", resp.Stage)
	assert.Empty(t, resp.Recording)
	assert.Empty(t, ts.files(t))
}

func TestIndexListsNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	for _, name := range []string{"20240601-090000AM.wav", "20240602-090000AM.wav", "20240601-090000AM.wav.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(ts.store.Root(), name), []byte("x"), 0644))
	}

	w := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	newer := strings.Index(body, "20240602-090000AM.wav")
	older := strings.Index(body, "20240601-090000AM.wav")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)
	assert.Contains(t, body, "/uploads/20240601-090000AM.wav.txt")
	assert.Contains(t, body, "no report")
}

func TestIndexShowsNotice(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape("No audio data")})
	w := ts.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No audio data")
}

func TestServeArtifacts(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(ts.store.Root(), "a.wav.txt"), []byte("report body"), 0644))
	secret := filepath.Join(filepath.Dir(ts.store.Root()), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0644))

	for _, prefix := range []string{"/upload/", "/uploads/"} {
		w := ts.do(httptest.NewRequest(http.MethodGet, prefix+"a.wav.txt", nil))
		assert.Equal(t, http.StatusOK, w.Code, prefix)
		assert.Equal(t, "report body", w.Body.String())

		w = ts.do(httptest.NewRequest(http.MethodGet, prefix+"missing.wav", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, prefix)

		w = ts.do(httptest.NewRequest(http.MethodGet, prefix+"..%2Fsecret.txt", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, prefix)
		assert.NotEqual(t, "secret", w.Body.String())
	}
}

func TestScript(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/script.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t)
	ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF")))
	ts.now = ts.now.Add(time.Minute)
	ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF")))

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/history?limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 2)
	assert.Equal(t, "20240601-101630AM.wav", resp.History[0].Recording)
	assert.Equal(t, "NEGATIVE", resp.History[0].Label)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "google", resp["backend"])
}

func TestAccessControl(t *testing.T) {
	hash, err := auth.HashAccessKey("let-me-in")
	require.NoError(t, err)
	ts := newTestServer(t, withIssuer(auth.NewIssuer("secret", hash, time.Hour)))

	w := ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, ts.files(t))

	tokenReq := func(key string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"access_key":"`+key+`","client":"test"}`))
		req.Header.Set("Content-Type", "application/json")
		return req
	}
	w = ts.do(tokenReq("wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(tokenReq("let-me-in"))
	require.Equal(t, http.StatusOK, w.Code)
	var token TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)

	req := multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF"))
	req.Header.Set("Authorization", "Bearer "+token.Token)
	w = ts.do(req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, ts.files(t), 2)
}

func TestTokenDisabled(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"access_key":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := ts.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportFeed(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/reports", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return ts.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	w := ts.do(multipartUpload(t, "audio_data", "sample.wav", []byte("RIFF")))
	require.Equal(t, http.StatusSeeOther, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event events.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.TypeReportWritten, event.Type)
	assert.Equal(t, "20240601-101530AM.wav", event.Recording)
	assert.Equal(t, "20240601-101530AM.wav.txt", event.Report)
	assert.Equal(t, "NEGATIVE", event.Label)
}
