package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farebd/leasehold/api/internal/logger"
)

// captureLogger returns a logger whose JSON output lands in the buffer.
func captureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWithWriter("test", &buf), &buf
}

func TestRequestID_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/properties", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	headerID := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, headerID)
	assert.Equal(t, headerID, w.Body.String(), "context and response header should carry the same id")
}

func TestRequestID_HonorsUpstreamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/properties", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set(RequestIDHeader, "edge-proxy-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "edge-proxy-42", w.Body.String())
	assert.Equal(t, "edge-proxy-42", w.Header().Get(RequestIDHeader))
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, GetRequestID(&gin.Context{}))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/api/v1/properties", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.POST("/api/v1/cooper/report", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cooper/report", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	exposed := w.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, "Content-Disposition", "report filename must be readable cross-origin")
	assert.Contains(t, exposed, "X-Request-ID")
}

func TestCORS_UnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/api/v1/properties", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Origin", "http://rival-marketplace.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightForUnknownOriginRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.POST("/api/v1/search", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/search", nil)
	req.Header.Set("Origin", "http://rival-marketplace.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogger_WritesAccessLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, buf := captureLogger()
	router := gin.New()
	router.Use(RequestID(), Logger(log))
	router.GET("/api/v1/properties/recent", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/recent?type=plot", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"message":"Request completed"`)
	assert.Contains(t, out, `"path":"/api/v1/properties/recent"`)
	assert.Contains(t, out, `"query":"type=plot"`)
	assert.Contains(t, out, `"request_id"`)
}

func TestLogger_ClientErrorLogsAsWarn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, buf := captureLogger()
	router := gin.New()
	router.Use(RequestID(), Logger(log))
	router.GET("/api/v1/properties/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"status":404`)
}

func TestLogger_ServerErrorLogsAsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, buf := captureLogger()
	router := gin.New()
	router.Use(RequestID(), Logger(log))
	router.POST("/api/v1/search", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestGetLogger_AvailableToHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := captureLogger()
	router := gin.New()
	router.Use(RequestID(), Logger(log))
	router.GET("/api/v1/users/me", func(c *gin.Context) {
		require.NotNil(t, GetLogger(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetLogger_NilWithoutMiddleware(t *testing.T) {
	assert.Nil(t, GetLogger(&gin.Context{}))
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, buf := captureLogger()
	router := gin.New()
	router.Use(RequestID(), Logger(log), Recovery(log))
	router.GET("/api/v1/properties/:id", func(c *gin.Context) {
		panic("listing decode failed")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
	assert.Contains(t, w.Body.String(), "request_id")
	assert.Contains(t, buf.String(), "listing decode failed")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := captureLogger()
	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}

func TestMiddlewareStack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, buf := captureLogger()

	router := gin.New()
	router.Use(RequestID())
	router.Use(Logger(log))
	router.Use(Recovery(log))
	router.Use(Metrics())
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/api/v1/properties", func(c *gin.Context) {
		require.NotEmpty(t, GetRequestID(c))
		require.NotNil(t, GetLogger(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, buf.String(), `"message":"Request completed"`)
}
