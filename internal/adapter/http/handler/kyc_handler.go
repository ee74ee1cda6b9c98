package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/usecase"
)

// maxUploadBytes bounds KYC document and selfie uploads.
const maxUploadBytes = 10 << 20

// KYCService defines the behavior needed by KYCHandler.
type KYCService interface {
	SubmitPersonalInfo(ctx context.Context, input usecase.PersonalInfoInput) (*domain.KYCProfile, error)
	UploadDocument(ctx context.Context, input usecase.UploadDocumentInput) (*domain.KYCProfile, error)
	SubmitSelfie(ctx context.Context, userID string, source usecase.ImageSource) (*domain.KYCProfile, error)
	Status(ctx context.Context, userID string) (*domain.KYCProfile, error)
	Retry(ctx context.Context, userID string) (*domain.KYCProfile, error)
	Submit(ctx context.Context, userID string) (*domain.KYCProfile, error)
}

// KYCHandler handles onboarding wizard HTTP requests.
type KYCHandler struct {
	kycUC KYCService
}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler(kycUC KYCService) *KYCHandler {
	return &KYCHandler{kycUC: kycUC}
}

// PersonalInfo completes the personal information step.
func (h *KYCHandler) PersonalInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.PersonalInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.kycUC.SubmitPersonalInfo(r.Context(), req.ToUseCaseInput(requestUserID(r)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit personal info", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// UploadDocument accepts a multipart verification document for the step
// named in the form.
func (h *KYCHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	step := r.FormValue("step")
	if step == "" {
		writeError(w, http.StatusBadRequest, "missing step field", "")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document file", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read document", err.Error())
		return
	}

	profile, err := h.kycUC.UploadDocument(r.Context(), usecase.UploadDocumentInput{
		UserID:   requestUserID(r),
		Step:     domain.KYCStepID(step),
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to upload document", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// Selfie accepts the captured selfie image and completes the selfie step.
func (h *KYCHandler) Selfie(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	file, _, err := r.FormFile("selfie")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing selfie file", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read selfie", err.Error())
		return
	}

	profile, err := h.kycUC.SubmitSelfie(r.Context(), requestUserID(r), uploadedImage(data))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit selfie", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// Status returns the user's wizard state.
func (h *KYCHandler) Status(w http.ResponseWriter, r *http.Request) {
	profile, err := h.kycUC.Status(r.Context(), requestUserID(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get kyc status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// Retry reopens a failed step.
func (h *KYCHandler) Retry(w http.ResponseWriter, r *http.Request) {
	profile, err := h.kycUC.Retry(r.Context(), requestUserID(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to retry kyc step", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// Submit finalizes the profile for backend review.
func (h *KYCHandler) Submit(w http.ResponseWriter, r *http.Request) {
	profile, err := h.kycUC.Submit(r.Context(), requestUserID(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit kyc profile", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KYCProfileFromDomain(profile))
}

// uploadedImage adapts already-received bytes to the capture interface.
type uploadedImage []byte

func (u uploadedImage) CaptureImage(ctx context.Context) ([]byte, error) {
	return u, nil
}
