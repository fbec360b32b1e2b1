package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/metrics"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories/document"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
)

type testServer struct {
	router   *gin.Engine
	verifier *identity.StaticVerifier
	store    *store.Memory
}

func newTestServer(t *testing.T, strict bool, gen ai.Generator) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.Register()

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	verifier := identity.NewStaticVerifier().
		Add("teacher-token", "T1", "teacher@manan.ai").
		Add("student-token", "S1", "rahul@manan.ai").
		Add("other-token", "S2", "priya@manan.ai")

	mem := store.NewMemory()
	sm := services.NewServiceManager(services.Dependencies{
		Repo:      document.NewDocumentRepository(mem),
		Verifier:  verifier,
		Generator: gen,
		Publisher: events.NewMockEventPublisher(slogger),
		Logger:    slogger,
	}, services.ServiceManagerConfig{})
	require.NoError(t, sm.Initialize(context.Background()))

	router := gin.New()
	SetupMiddleware(router, logger, []string{"http://localhost:3000"})
	NewHandlerManager(sm, verifier, logger, HandlerConfig{StrictStatus: strict}).SetupRoutes(router)
	return &testServer{router: router, verifier: verifier, store: mem}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func failingGenerator() ai.Generator {
	return ai.GeneratorFunc(func(ctx context.Context, model, prompt string) (string, error) {
		return "", errors.New("upstream unavailable")
	})
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t, false, nil)

	w := srv.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nova API Active", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = srv.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestTeacherFlow(t *testing.T) {
	srv := newTestServer(t, false, nil)

	w := srv.do(t, http.MethodPost, "/auth/sync", gin.H{"token": "teacher-token", "role": "admin"})
	assert.Equal(t, "admin", decode(t, w)["role"])
	w = srv.do(t, http.MethodPost, "/auth/sync", gin.H{"token": "student-token", "role": "student"})
	assert.Equal(t, "S1", decode(t, w)["uid"])

	w = srv.do(t, http.MethodPost, "/courses", gin.H{"title": "Computer Networks", "teacher_id": "T1", "token": "teacher-token"})
	created := decode(t, w)
	require.Equal(t, "success", created["status"], w.Body.String())
	courseID := created["id"].(string)

	for i := 0; i < 2; i++ {
		w = srv.do(t, http.MethodPost, "/courses/enroll", gin.H{"student_id": "S1", "course_id": courseID, "token": "student-token"})
		assert.Equal(t, "success", decode(t, w)["status"])
	}

	w = srv.do(t, http.MethodPost, "/courses/doubts", gin.H{"student_id": "S1", "course_id": courseID, "question": "What is subnetting?", "token": "student-token"})
	assert.Equal(t, "success", decode(t, w)["status"])

	w = srv.do(t, http.MethodPost, "/teacher/students", gin.H{"teacher_id": "T1", "token": "teacher-token"})
	roster := decode(t, w)
	students := roster["students"].([]interface{})
	require.Len(t, students, 1)
	assert.Equal(t, "S1", students[0].(map[string]interface{})["id"])
	assert.Equal(t, "rahul", students[0].(map[string]interface{})["name"])

	w = srv.do(t, http.MethodPost, "/admin/stats", gin.H{"teacher_id": "T1", "token": "teacher-token"})
	stats := decode(t, w)
	assert.EqualValues(t, 1, stats["active_courses"])
	assert.EqualValues(t, 1, stats["total_students"])
	assert.EqualValues(t, 1, stats["unsolved_doubts"])
	assert.EqualValues(t, 85, stats["avg_attendance"])

	w = srv.do(t, http.MethodGet, "/courses", nil)
	courses := decode(t, w)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.EqualValues(t, 1, courses[0].(map[string]interface{})["doubts_count"])

	w = srv.do(t, http.MethodPost, "/teacher/students/export", gin.H{"teacher_id": "T1", "token": "teacher-token"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = srv.do(t, http.MethodDelete, "/courses/"+courseID+"?token=other-token", nil)
	assert.Equal(t, "error", decode(t, w)["status"])
	w = srv.do(t, http.MethodDelete, "/courses/"+courseID, nil, "Authorization", "Bearer teacher-token")
	assert.Equal(t, "success", decode(t, w)["status"])
}

func TestErrorEnvelope(t *testing.T) {
	srv := newTestServer(t, false, nil)

	w := srv.do(t, http.MethodPost, "/teacher/students", gin.H{"teacher_id": "T1", "token": "forged"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["message"])

	w = srv.do(t, http.MethodDelete, "/courses/missing?token=teacher-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", decode(t, w)["status"])
}

func TestStrictStatus(t *testing.T) {
	srv := newTestServer(t, true, nil)

	w := srv.do(t, http.MethodPost, "/teacher/students", gin.H{"teacher_id": "T1", "token": "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", decode(t, w)["status"])

	w = srv.do(t, http.MethodDelete, "/courses/missing?token=teacher-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, "/courses", gin.H{"teacher_id": "T1", "token": "teacher-token"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	srv := newTestServer(t, false, nil)
	srv.do(t, http.MethodPost, "/auth/sync", gin.H{"token": "student-token"})

	w := srv.do(t, http.MethodPut, "/student/profile", gin.H{
		"uid": "S1", "name": "Rahul", "branch": "CSE", "year": 3, "cgpa": 4.2, "attendance": 58,
	}, "Authorization", "Bearer student-token")
	body := decode(t, w)
	require.Equal(t, "success", body["status"], w.Body.String())
	assert.Equal(t, "At Risk", body["risk_status"])

	w = srv.do(t, http.MethodGet, "/student/profile?uid=S1", nil)
	profile := decode(t, w)
	assert.Equal(t, "Rahul", profile["name"])
	assert.Equal(t, "rahul@manan.ai", profile["email"])
	assert.EqualValues(t, 4.2, profile["cgpa"])
	assert.Equal(t, "At Risk", profile["risk_status"])

	w = srv.do(t, http.MethodPut, "/student/profile", gin.H{"uid": "S1", "token": "other-token"})
	assert.Equal(t, "error", decode(t, w)["status"])
}

func TestPredict(t *testing.T) {
	srv := newTestServer(t, false, nil)

	w := srv.do(t, http.MethodPost, "/predict", gin.H{"attendance": 70, "marks": 40})
	body := decode(t, w)
	assert.Equal(t, "High", body["risk_level"])
	assert.EqualValues(t, 4.9, body["predicted_cgpa"])

	clamped := decode(t, srv.do(t, http.MethodPost, "/predict", gin.H{"attendance": -5, "marks": 150}))
	expected := decode(t, srv.do(t, http.MethodPost, "/predict", gin.H{"attendance": 0, "marks": 100}))
	assert.Equal(t, expected, clamped)
}

func TestTutorFallbacks(t *testing.T) {
	srv := newTestServer(t, false, failingGenerator())

	w := srv.do(t, http.MethodPost, "/generate-quiz", gin.H{"subject": "OS", "topic": "Paging"})
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Len(t, body["quiz"].([]interface{}), 5)

	w = srv.do(t, http.MethodPost, "/solve-doubt", gin.H{"student_id": "S1", "question_text": "Explain paging"})
	body = decode(t, w)
	assert.NotEmpty(t, body["answer"])
	assert.NotNil(t, body["citations"])

	w = srv.do(t, http.MethodPost, "/solve-doubt", gin.H{"question_text": "Explain the OSI model"})
	assert.Contains(t, decode(t, w)["answer"], "Application Layer")
}

func TestAnalyzeResume(t *testing.T) {
	srv := newTestServer(t, false, failingGenerator())

	upload := func(fileName, content, token string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("student_id", "S1"))
		if token != "" {
			require.NoError(t, mw.WriteField("token", token))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/analyze-resume", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w
	}

	review := "resume_reviews/S1"

	// without a matching token the analysis is served but not stored
	for _, token := range []string{"", "other-token"} {
		body := decode(t, upload("Priya_Resume.pdf", "%PDF", token))
		assert.EqualValues(t, 82, body["score"])
		assert.Equal(t, "demo", body["source"])
		assert.ErrorIs(t, srv.store.Get(context.Background(), review, nil), store.ErrNotFound)
	}

	decode(t, upload("Priya_Resume.pdf", "%PDF", "student-token"))
	var saved map[string]interface{}
	require.NoError(t, srv.store.Get(context.Background(), review, &saved))
	assert.Equal(t, "Priya_Resume.pdf", saved["file_name"])

	body := decode(t, upload("cv.txt", "Backend engineer, Go", ""))
	assert.Equal(t, "error", body["status"])

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, "error", decode(t, w)["status"])
}

func TestPlacement(t *testing.T) {
	srv := newTestServer(t, false, nil)

	body := decode(t, srv.do(t, http.MethodGet, "/placement-drives", nil))
	assert.NotEmpty(t, body["drives"])

	w := srv.do(t, http.MethodPost, "/placement-progress", gin.H{
		"student_id": "S1", "token": "student-token", "topics": gin.H{"graphs": true}, "streak": 2,
	})
	assert.Equal(t, "success", decode(t, w)["status"])

	progress := decode(t, srv.do(t, http.MethodGet, "/placement-progress?student_id=S1&token=student-token", nil))
	assert.Equal(t, true, progress["topics"].(map[string]interface{})["graphs"])
	assert.EqualValues(t, 2, progress["streak"])
}

func TestCORSAndMetrics(t *testing.T) {
	srv := newTestServer(t, false, nil)

	req := httptest.NewRequest(http.MethodOptions, "/courses", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	srv.do(t, http.MethodGet, "/courses", nil)
	w = srv.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestTokenFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := func(target, auth string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		if auth != "" {
			c.Request.Header.Set("Authorization", auth)
		}
		return c
	}

	assert.Equal(t, "body", tokenFrom(ctx("/?token=query", "Bearer header"), "body"))
	assert.Equal(t, "query", tokenFrom(ctx("/?token=query", "Bearer header"), ""))
	assert.Equal(t, "header", tokenFrom(ctx("/", "Bearer header"), ""))
	assert.Equal(t, "", tokenFrom(ctx("/", "Basic abc"), ""))
}
