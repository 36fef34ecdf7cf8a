package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// Upload validation must reject bad requests before the pipeline is ever
// touched, so a server with no processor wired is sufficient here.
func validationServer() *Server {
	return New(nil, nil, nil, nil, nil, 1024)
}

func TestUploadExcel_RejectsWrongExtension(t *testing.T) {
	router := validationServer().Router()

	body, contentType := multipartBody(t, "loans.csv", []byte("a,b\n1,2\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Excel")
}

func TestUploadExcel_RejectsMissingFile(t *testing.T) {
	router := validationServer().Router()

	req := httptest.NewRequest(http.MethodPost, "/api/upload/excel", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPDF_RejectsWrongExtension(t *testing.T) {
	router := validationServer().Router()

	body, contentType := multipartBody(t, "report.docx", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PDF")
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	router := validationServer().Router() // 1KB cap

	body, contentType := multipartBody(t, "big.xlsx", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum upload size")
}

func TestHealth(t *testing.T) {
	router := validationServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestListLoans_RejectsNegativeQuery(t *testing.T) {
	router := validationServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/api/loans?skip=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLoan_RejectsMalformedID(t *testing.T) {
	router := validationServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/api/loans/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
