package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"doclearn-backend/internal/bootstrap"
	"doclearn-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func uploadFiles(t *testing.T, router *gin.Engine, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		fileWriter, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fileWriter.Write([]byte(content)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDocumentsUploadAndList(t *testing.T) {
	router := buildRouter(t)

	resp := uploadFiles(t, router, map[string]string{"hello.txt": "hello world from the upload test"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Items []struct {
			FileName   string `json:"fileName"`
			DocumentID string `json:"documentId"`
			Status     string `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if len(created.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(created.Items))
	}
	if created.Items[0].Status != "created" || created.Items[0].DocumentID == "" {
		t.Fatalf("unexpected item: %+v", created.Items[0])
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}

	var docs []struct {
		DocumentID string `json:"documentId"`
		FileName   string `json:"fileName"`
		Processed  bool   `json:"processed"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(docs) != 1 || docs[0].FileName != "hello.txt" {
		t.Fatalf("unexpected list: %+v", docs)
	}
	if docs[0].Processed {
		t.Fatalf("expected processed=false before generation")
	}
}

func TestDocumentsUploadRejectsDisallowedExtension(t *testing.T) {
	router := buildRouter(t)

	resp := uploadFiles(t, router, map[string]string{"malware.exe": "MZ binary"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 with per-item status, got %d", resp.Code)
	}

	var created struct {
		Items []struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Items) != 1 || created.Items[0].Status != "rejected" {
		t.Fatalf("expected rejected item, got %+v", created.Items)
	}
}

func TestDocumentsSummaryFallbacksBeforeGeneration(t *testing.T) {
	router := buildRouter(t)

	resp := uploadFiles(t, router, map[string]string{"hello.txt": "hello world from the summary test"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created struct {
		Items []struct {
			DocumentID string `json:"documentId"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.Items[0].DocumentID+"/summary", nil)
	addGuestHeader(req)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, req)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	var body struct {
		Processed bool `json:"processed"`
		Summary   struct {
			Detailed     string   `json:"detailed"`
			KeyPoints    []string `json:"keyPoints"`
			DocumentType string   `json:"documentType"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&body); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if body.Processed {
		t.Fatalf("expected processed=false")
	}
	if body.Summary.Detailed != "Detailed summary not available" {
		t.Fatalf("expected detailed fallback, got %q", body.Summary.Detailed)
	}
	if body.Summary.DocumentType != "Unknown" {
		t.Fatalf("expected Unknown type, got %q", body.Summary.DocumentType)
	}
}
