package client

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AnalyzeResume(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze_resume", r.URL.Path)

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		content, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", fh.Filename)
		assert.Equal(t, "pdf-bytes", string(content))
		assert.Equal(t, "jane@example.com", r.FormValue("email"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"filename":"cv.pdf","skills":["Go"],"experience":"2 years","status":"analyzed; notification dispatched"}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "", time.Second)
	res, err := c.AnalyzeResume(t.Context(), "cv.pdf", strings.NewReader("pdf-bytes"), "jane@example.com")

	require.NoError(t, err)
	assert.Equal(t, &AnalyzeResult{
		Filename:   "cv.pdf",
		Skills:     []string{"Go"},
		Experience: "2 years",
		Status:     "analyzed; notification dispatched",
	}, res)
}

func TestClient_AnalyzeResume_WithoutEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["email"]
		assert.False(t, ok)
		io.WriteString(w, `{"filename":"cv.docx","skills":[],"experience":"","status":"ok"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", time.Second).AnalyzeResume(t.Context(), "cv.docx", strings.NewReader("x"), "")
	require.NoError(t, err)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"request_id":"r1","error":{"code":"UNSUPPORTED_FORMAT","message":"Unsupported file format. Use PDF or DOCX."}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", time.Second).AnalyzeResume(t.Context(), "cv.txt", strings.NewReader("x"), "")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", apiErr.Code)
	assert.Equal(t, "400 UNSUPPORTED_FORMAT: Unsupported file format. Use PDF or DOCX.", apiErr.Error())
}

func TestClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New("", srv.URL, time.Second).UploadResume(t.Context(), "cv.pdf", strings.NewReader("x"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Empty(t, apiErr.Code)
}

func TestClient_UploadResume(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload_resume", r.URL.Path)
		io.WriteString(w, `{"message":"Resume 'cv.pdf' uploaded successfully and sent to N8N."}`)
	}))
	defer srv.Close()

	msg, err := New("", srv.URL, time.Second).UploadResume(t.Context(), "cv.pdf", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "Resume 'cv.pdf' uploaded successfully and sent to N8N.", msg)
}

func TestClient_LatestJobs(t *testing.T) {
	t.Run("jobs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/get_latest_jobs", r.URL.Path)
			io.WriteString(w, `{"jobs":[{"title":"Go Dev","company":"Acme","url":"https://x/1"},{"title":"SRE"}]}`)
		}))
		defer srv.Close()

		latest, err := New("", srv.URL, time.Second).LatestJobs(t.Context())

		require.NoError(t, err)
		require.Len(t, latest.Jobs, 2)
		assert.Equal(t, "Acme", latest.Jobs[0].Company.String)
		assert.False(t, latest.Jobs[1].Company.Valid)
		assert.Empty(t, latest.Message)
	})

	t.Run("nothing yet", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"message":"No recent job data available"}`)
		}))
		defer srv.Close()

		latest, err := New("", srv.URL, time.Second).LatestJobs(t.Context())

		require.NoError(t, err)
		assert.Empty(t, latest.Jobs)
		assert.Equal(t, "No recent job data available", latest.Message)
	})
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New("", url, time.Second).LatestJobs(t.Context())
	assert.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
