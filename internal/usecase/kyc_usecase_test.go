package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/usecase"
	"github.com/novabank/docgen/internal/usecase/mocks"
)

func newKYCUC(repo *mocks.MockKYCRepository, store *mocks.MockDocumentStore) *usecase.KYCUseCase {
	return usecase.NewKYCUseCase(repo, store, mocks.NewMockIDGenerator(), mocks.MockClock{Time: fixedNow})
}

func validPersonalInfo(userID string) usecase.PersonalInfoInput {
	return usecase.PersonalInfoInput{
		UserID:      userID,
		FullName:    "Jordan Rivera",
		Email:       "jordan@example.com",
		DateOfBirth: "1990-04-12",
		Phone:       "+66812345678",
	}
}

func TestKYCUseCase_SubmitPersonalInfo_CreatesProfile(t *testing.T) {
	repo := mocks.NewMockKYCRepository()
	uc := newKYCUC(repo, mocks.NewMockDocumentStore())

	p, err := uc.SubmitPersonalInfo(context.Background(), validPersonalInfo("user-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Steps[0].Status != domain.StepCompleted {
		t.Errorf("expected personal_info completed, got %s", p.Steps[0].Status)
	}
	if cur := p.Current(); cur == nil || cur.ID != domain.StepIdentity {
		t.Errorf("expected wizard to advance to identity step, got %v", cur)
	}

	stored, err := repo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("profile was not persisted: %v", err)
	}
	if stored.CurrentStep != 1 {
		t.Errorf("expected current step 1, got %d", stored.CurrentStep)
	}
}

func TestKYCUseCase_SubmitPersonalInfo_RejectsBadEmail(t *testing.T) {
	uc := newKYCUC(mocks.NewMockKYCRepository(), mocks.NewMockDocumentStore())

	input := validPersonalInfo("user-1")
	input.Email = "not-an-email"
	if _, err := uc.SubmitPersonalInfo(context.Background(), input); err == nil {
		t.Error("expected validation error for malformed email")
	}
}

func TestKYCUseCase_UploadDocument_OutOfOrder(t *testing.T) {
	uc := newKYCUC(mocks.NewMockKYCRepository(), mocks.NewMockDocumentStore())

	// Identity upload before personal info must not advance the wizard.
	_, err := uc.UploadDocument(context.Background(), usecase.UploadDocumentInput{
		UserID:   "user-1",
		Step:     domain.StepIdentity,
		Filename: "passport.pdf",
		Data:     []byte("pdf"),
	})
	if !errors.Is(err, domain.ErrKYCStepOutOfOrder) {
		t.Errorf("expected ErrKYCStepOutOfOrder, got %v", err)
	}
}

func TestKYCUseCase_UploadDocument_RejectsEmpty(t *testing.T) {
	uc := newKYCUC(mocks.NewMockKYCRepository(), mocks.NewMockDocumentStore())

	_, err := uc.UploadDocument(context.Background(), usecase.UploadDocumentInput{
		UserID:   "user-1",
		Step:     domain.StepIdentity,
		Filename: "passport.pdf",
	})
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestKYCUseCase_FullWizard_AutoSubmits(t *testing.T) {
	repo := mocks.NewMockKYCRepository()
	store := mocks.NewMockDocumentStore()
	uc := newKYCUC(repo, store)
	ctx := context.Background()

	if _, err := uc.SubmitPersonalInfo(ctx, validPersonalInfo("user-1")); err != nil {
		t.Fatalf("personal info: %v", err)
	}

	for _, step := range []domain.KYCStepID{domain.StepIdentity, domain.StepAddress} {
		_, err := uc.UploadDocument(ctx, usecase.UploadDocumentInput{
			UserID:   "user-1",
			Step:     step,
			Filename: "doc.pdf",
			Data:     []byte("doc"),
		})
		if err != nil {
			t.Fatalf("upload %s: %v", step, err)
		}
	}

	p, err := uc.SubmitSelfie(ctx, "user-1", mocks.MockImageSource{Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("selfie: %v", err)
	}
	if !p.ReadyToSubmit() {
		t.Fatal("expected all required steps completed after selfie")
	}
	if p.Submitted {
		t.Fatal("profile must not auto-submit while the optional step is open")
	}

	// Completing the optional income step finalizes the profile.
	p, err = uc.UploadDocument(ctx, usecase.UploadDocumentInput{
		UserID:   "user-1",
		Step:     domain.StepIncome,
		Filename: "payslip.pdf",
		Data:     []byte("payslip"),
	})
	if err != nil {
		t.Fatalf("income upload: %v", err)
	}
	if !p.Submitted {
		t.Error("expected auto-submit once every step is completed")
	}

	if len(store.Saved) != 4 {
		t.Errorf("expected 4 stored documents, got %d", len(store.Saved))
	}
	for ref := range store.Saved {
		if !strings.HasPrefix(ref, "user-1/") {
			t.Errorf("document stored under wrong user: %s", ref)
		}
	}
}

func TestKYCUseCase_FailThenRetry(t *testing.T) {
	repo := mocks.NewMockKYCRepository()
	uc := newKYCUC(repo, mocks.NewMockDocumentStore())
	ctx := context.Background()

	if _, err := uc.SubmitPersonalInfo(ctx, validPersonalInfo("user-1")); err != nil {
		t.Fatalf("personal info: %v", err)
	}

	p, err := uc.MarkFailed(ctx, "user-1")
	if err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if p.Current().Status != domain.StepFailed {
		t.Errorf("expected failed status, got %s", p.Current().Status)
	}

	// Retry is only valid from the failed state.
	if _, err := uc.Retry(ctx, "user-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	p, _ = uc.Status(ctx, "user-1")
	if p.Current().Status != domain.StepInProgress {
		t.Errorf("expected in_progress after retry, got %s", p.Current().Status)
	}
	if _, err := uc.Retry(ctx, "user-1"); !errors.Is(err, domain.ErrKYCStepNotFailed) {
		t.Errorf("expected ErrKYCStepNotFailed on second retry, got %v", err)
	}
}

func TestKYCUseCase_Submit_RequiresCompletedSteps(t *testing.T) {
	repo := mocks.NewMockKYCRepository()
	uc := newKYCUC(repo, mocks.NewMockDocumentStore())
	ctx := context.Background()

	if _, err := uc.SubmitPersonalInfo(ctx, validPersonalInfo("user-1")); err != nil {
		t.Fatalf("personal info: %v", err)
	}
	if _, err := uc.Submit(ctx, "user-1"); !errors.Is(err, domain.ErrKYCStepOutOfOrder) {
		t.Errorf("expected ErrKYCStepOutOfOrder for premature submit, got %v", err)
	}
}

func TestKYCUseCase_Status_UnknownUser(t *testing.T) {
	uc := newKYCUC(mocks.NewMockKYCRepository(), mocks.NewMockDocumentStore())

	_, err := uc.Status(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrKYCProfileNotFound) {
		t.Errorf("expected ErrKYCProfileNotFound, got %v", err)
	}
}
