package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/tests/testutil"
)

// multipartDocument builds a multipart body carrying a document upload for
// the named step.
func multipartDocument(t *testing.T, step, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if step != "" {
		if err := mw.WriteField("step", step); err != nil {
			t.Fatalf("failed to write step field: %v", err)
		}
	}
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write file data: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func multipartSelfie(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("selfie", "selfie.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write file data: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestKYCWizard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, testDB)

	user := testDB.CreateTestUser(ctx, "nina@example.com", "Nina Torres", "secret-pw")
	userQS := "?user_id=" + user.ID

	postProfile := func(t *testing.T, path string, body *bytes.Buffer, contentType string) dto.KYCProfileResponse {
		t.Helper()

		var r *http.Request
		if body != nil {
			r = httptest.NewRequest(http.MethodPost, path+userQS, body)
			r.Header.Set("Content-Type", contentType)
		} else {
			r = httptest.NewRequest(http.MethodPost, path+userQS, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("POST %s: expected status %d, got %d: %s", path, http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.KYCProfileResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		return resp
	}

	t.Run("document before personal info is rejected", func(t *testing.T) {
		body, contentType := multipartDocument(t, "identity_verification", "passport.jpg", []byte("img"))
		r := httptest.NewRequest(http.MethodPost, "/api/v1/kyc/documents"+userQS, body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})

	t.Run("complete wizard in order", func(t *testing.T) {
		info, _ := json.Marshal(dto.PersonalInfoRequest{
			FullName:    "Nina Torres",
			Email:       "nina@example.com",
			DateOfBirth: "1991-04-02",
			Phone:       "+1-555-0100",
		})
		resp := postProfile(t, "/api/v1/kyc/personal-info", bytes.NewBuffer(info), "application/json")
		if resp.CurrentStep != 1 || resp.Steps[1].ID != "identity_verification" {
			t.Fatalf("expected wizard on identity step, got index %d", resp.CurrentStep)
		}

		body, contentType := multipartDocument(t, "identity_verification", "passport.jpg", []byte("passport-bytes"))
		postProfile(t, "/api/v1/kyc/documents", body, contentType)

		body, contentType = multipartDocument(t, "address_verification", "utility-bill.pdf", []byte("bill-bytes"))
		postProfile(t, "/api/v1/kyc/documents", body, contentType)

		body, contentType = multipartSelfie(t, []byte("selfie-bytes"))
		resp = postProfile(t, "/api/v1/kyc/selfie", body, contentType)

		if !resp.ReadyToSubmit {
			t.Fatal("expected profile ready to submit after required steps")
		}
		if resp.Submitted {
			t.Fatal("profile must not auto-submit while the optional step is open")
		}

		resp = postProfile(t, "/api/v1/kyc/submit", nil, "")
		if !resp.Submitted {
			t.Fatal("expected profile submitted")
		}
	})

	t.Run("status reflects submitted profile", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/kyc/status"+userQS, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.KYCProfileResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if !resp.Submitted {
			t.Error("expected submitted profile in status")
		}
	})

	t.Run("resubmission is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/kyc/submit"+userQS, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}
