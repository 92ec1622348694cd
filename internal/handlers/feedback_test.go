package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"echofeed-backend/internal/ai"
	"echofeed-backend/internal/models"
	"echofeed-backend/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanNotifier records published submissions so tests can wait for the
// async notification goroutine.
type chanNotifier struct {
	published chan *models.Submission
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{published: make(chan *models.Submission, 8)}
}

func (n *chanNotifier) Publish(ctx context.Context, submission *models.Submission) error {
	n.published <- submission
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *chanNotifier) {
	t.Helper()

	// AI disabled: nil completer, every submission gets the fallback.
	analyzer := ai.NewAnalyzer(nil, ai.NewRetrier(ai.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond}))
	notifier := newChanNotifier()
	handler := NewFeedbackHandler(store.NewMemoryStore(), analyzer, notifier)

	r := chi.NewRouter()
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", handler.ListFeedback)
		r.Post("/", handler.SubmitFeedback)
		r.Patch("/{id}", handler.PatchFeedback)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, notifier
}

func postFeedback(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/feedback", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func TestSubmitFeedbackEndToEnd(t *testing.T) {
	srv, notifier := newTestServer(t)

	resp := postFeedback(t, srv, `{"rating": 5, "reviewText": "Great service!"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))

	// helpfulResponse must be present and explicitly null on a fresh record.
	require.Contains(t, raw, "helpfulResponse")
	assert.Equal(t, "null", string(raw["helpfulResponse"]))

	var created models.Submission
	full, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(full, &created))

	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, "Great service!", created.ReviewText)
	assert.Equal(t, models.SentimentNeutral, created.AIAnalysis.Sentiment)
	assert.Equal(t, ai.FallbackAnalysis(), created.AIAnalysis)
	assert.NotZero(t, created.Timestamp)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	// Listing returns the new record as the most recent entry.
	listResp, err := http.Get(srv.URL + "/api/feedback")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var listed []models.Submission
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// The async notification fires for the stored record.
	select {
	case published := <-notifier.published:
		assert.Equal(t, created.ID, published.ID)
	case <-time.After(time.Second):
		t.Fatal("notification was never published")
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing rating", `{"reviewText": "no rating"}`},
		{"rating below range", `{"rating": 0, "reviewText": "zero"}`},
		{"rating above range", `{"rating": 6, "reviewText": "six"}`},
		{"missing review text", `{"rating": 3}`},
		{"empty review text", `{"rating": 3, "reviewText": ""}`},
		{"malformed json", `{"rating": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postFeedback(t, srv, tt.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestListFeedbackOrdering(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, text := range []string{"first", "second", "third"} {
		resp := postFeedback(t, srv, `{"rating": 4, "reviewText": "`+text+`"}`)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		// Millisecond timestamps need distinct persist instants.
		time.Sleep(2 * time.Millisecond)
	}

	resp, err := http.Get(srv.URL + "/api/feedback")
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed []models.Submission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].ReviewText)
	assert.Equal(t, "second", listed[1].ReviewText)
	assert.Equal(t, "first", listed[2].ReviewText)
}

func TestPatchFeedback(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postFeedback(t, srv, `{"rating": 2, "reviewText": "meh"}`)
	var created models.Submission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/feedback/"+created.ID,
		bytes.NewBufferString(`{"helpfulResponse": true}`))
	require.NoError(t, err)
	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer patchResp.Body.Close()
	require.Equal(t, http.StatusOK, patchResp.StatusCode)

	var updated models.Submission
	require.NoError(t, json.NewDecoder(patchResp.Body).Decode(&updated))
	require.NotNil(t, updated.HelpfulResponse)
	assert.True(t, *updated.HelpfulResponse)

	// Everything else is untouched.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Rating, updated.Rating)
	assert.Equal(t, created.ReviewText, updated.ReviewText)
	assert.Equal(t, created.Timestamp, updated.Timestamp)
	assert.Equal(t, created.AIAnalysis, updated.AIAnalysis)
}

func TestPatchFeedbackUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/feedback/nonexistent",
		bytes.NewBufferString(`{"helpfulResponse": false}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "submission not found", body["message"])
}

func TestPatchFeedbackRequiresHelpfulResponse(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postFeedback(t, srv, `{"rating": 3, "reviewText": "ok"}`)
	var created models.Submission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/feedback/"+created.ID,
		bytes.NewBufferString(`{"timestamp": 0}`))
	require.NoError(t, err)
	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer patchResp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, patchResp.StatusCode)
}
