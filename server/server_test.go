package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_content_generator/diagram"
	"course_content_generator/generator"
	"course_content_generator/logger"
	"course_content_generator/store"
)

const eraserStubBody = `{"imageUrl":"https://img.example/d.png","createEraserFileUrl":"https://app.eraser.io/f/1","diagrams":[{"diagramType":"concept-map","code":"a -> b"}]}`

type testEnv struct {
	engine     *gin.Engine
	llm        *generator.MockLLM
	eraserHits *atomic.Int64
}

func newTestEnv(t *testing.T, eraserToken string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var hits atomic.Int64
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(eraserStubBody))
	}))
	t.Cleanup(stub.Close)

	llm := generator.NewMockLLM()
	pipeline, err := generator.NewPipeline(llm, logger.NewNop(), false)
	require.NoError(t, err)

	contents, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { contents.Close() })

	srv, err := New(pipeline, diagram.New(eraserToken, stub.URL, nil), contents, logger.NewNop(), Options{})
	require.NoError(t, err)

	return &testEnv{engine: srv.Routes(), llm: llm, eraserHits: &hits}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpoint(t *testing.T) {
	env := newTestEnv(t, "test-token")

	w := env.do(http.MethodPost, "/api/content-generation", gin.H{"input": "Intro to Linear Algebra"})
	require.Equal(t, http.StatusOK, w.Code)

	var result generator.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Outline.Title)
	require.NotEmpty(t, result.Outline.Topics)
	for _, topic := range result.Outline.Topics {
		assert.NotEmpty(t, topic.Subtopics)
	}
	assert.NotEmpty(t, result.QuestionSet.Questions)
	assert.Len(t, result.ContentBundle.Sections, len(result.Outline.Topics))
}

func TestGenerateEndpointRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, "test-token")

	for name, body := range map[string]any{
		"missing input": gin.H{},
		"empty input":   gin.H{"input": ""},
		"whitespace":    gin.H{"input": "   "},
		"non-string":    gin.H{"input": 42},
	} {
		w := env.do(http.MethodPost, "/api/content-generation", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
	// No outbound model call was made for any rejected request.
	assert.EqualValues(t, 0, env.llm.Calls.Load())
}

func TestGenerateEndpointPipelineFailure(t *testing.T) {
	env := newTestEnv(t, "test-token")
	env.llm.Err = assert.AnError

	w := env.do(http.MethodPost, "/api/content-generation", gin.H{"input": "Databases"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate content")
}

func TestDiagramEndpointPassthrough(t *testing.T) {
	env := newTestEnv(t, "test-token")

	w := env.do(http.MethodPost, "/api/generate-diagram", gin.H{
		"text":        "Vectors and matrices",
		"diagramType": "concept-map",
	})
	require.Equal(t, http.StatusOK, w.Code)
	// Upstream body is forwarded unchanged.
	assert.JSONEq(t, eraserStubBody, w.Body.String())
	assert.EqualValues(t, 1, env.eraserHits.Load())
}

func TestDiagramEndpointMissingText(t *testing.T) {
	env := newTestEnv(t, "test-token")

	w := env.do(http.MethodPost, "/api/generate-diagram", gin.H{"diagramType": "concept-map"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Text content is required")
	assert.EqualValues(t, 0, env.eraserHits.Load())
}

func TestDiagramEndpointMissingToken(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(http.MethodPost, "/api/generate-diagram", gin.H{"text": "Vectors"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Eraser API token is not configured")
	// The credential check happens before any upstream call.
	assert.EqualValues(t, 0, env.eraserHits.Load())
}

func TestDiagramEndpointForwardsUpstreamStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusPaymentRequired)
	}))
	t.Cleanup(stub.Close)

	pipeline, err := generator.NewPipeline(generator.NewMockLLM(), logger.NewNop(), false)
	require.NoError(t, err)
	contents, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { contents.Close() })
	srv, err := New(pipeline, diagram.New("test-token", stub.URL, nil), contents, logger.NewNop(), Options{})
	require.NoError(t, err)

	env := &testEnv{engine: srv.Routes()}
	w := env.do(http.MethodPost, "/api/generate-diagram", gin.H{"text": "Vectors"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate diagram")
}

func TestContentsCRUD(t *testing.T) {
	env := newTestEnv(t, "test-token")

	// Generate a bundle to save.
	w := env.do(http.MethodPost, "/api/content-generation", gin.H{"input": "Algorithms"})
	require.Equal(t, http.StatusOK, w.Code)
	var result generator.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	w = env.do(http.MethodPost, "/api/contents", gin.H{
		"data": result,
		"diagrams": gin.H{
			"overview": json.RawMessage(`{"imageUrl":"https://img.example/o.png"}`),
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var saved store.SavedContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)
	// Title falls back to the outline title.
	assert.Equal(t, result.Outline.Title, saved.Title)

	w = env.do(http.MethodGet, "/api/contents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var headers []contentHeader
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &headers))
	require.Len(t, headers, 1)
	assert.Equal(t, saved.ID, headers[0].ID)

	w = env.do(http.MethodGet, "/api/contents/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got store.SavedContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, result, got.Data)
	assert.Contains(t, got.Diagrams, "overview")

	w = env.do(http.MethodGet, "/api/contents/"+saved.ID+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), result.Outline.Title)

	w = env.do(http.MethodDelete, "/api/contents/"+saved.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/contents/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentsNotFound(t *testing.T) {
	env := newTestEnv(t, "test-token")

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/contents/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/contents/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/contents/nope/export", nil).Code)
}

func TestStaticFrontend(t *testing.T) {
	env := newTestEnv(t, "test-token")

	w := env.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Content Generation</title>")

	// Unknown non-API paths fall back to the app shell.
	w = env.do(http.MethodGet, "/some/client/route", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Content Generation</title>")

	// Unknown API paths do not.
	w = env.do(http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
