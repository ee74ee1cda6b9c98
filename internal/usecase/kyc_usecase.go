package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/novabank/docgen/internal/domain"
)

// KYCUseCase drives the onboarding wizard: one step completes per accepted
// submission, failures stay on the step until retried.
type KYCUseCase struct {
	kycRepo  KYCRepository
	docStore DocumentStore
	idGen    IDGenerator
	clock    Clock
}

// NewKYCUseCase creates a new KYCUseCase.
func NewKYCUseCase(kycRepo KYCRepository, docStore DocumentStore, idGen IDGenerator, clock Clock) *KYCUseCase {
	return &KYCUseCase{
		kycRepo:  kycRepo,
		docStore: docStore,
		idGen:    idGen,
		clock:    clock,
	}
}

// profile loads the user's profile, creating a fresh one on first contact.
func (uc *KYCUseCase) profile(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	p, err := uc.kycRepo.GetByUser(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrKYCProfileNotFound) {
		return nil, err
	}

	p = domain.NewKYCProfile(uc.idGen.Generate(), userID, uc.clock.Now())
	if err := uc.kycRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PersonalInfoInput represents the first wizard step.
type PersonalInfoInput struct {
	UserID      string
	FullName    string
	Email       string
	DateOfBirth string
	Phone       string
}

// SubmitPersonalInfo validates and completes the personal_info step.
func (uc *KYCUseCase) SubmitPersonalInfo(ctx context.Context, input PersonalInfoInput) (*domain.KYCProfile, error) {
	if err := domain.ValidateName(input.FullName); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	p, err := uc.profile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := p.Complete(domain.StepPersonalInfo, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// documentSteps are the steps advanced by a document upload.
var documentSteps = map[domain.KYCStepID]bool{
	domain.StepIdentity: true,
	domain.StepAddress:  true,
	domain.StepIncome:   true,
}

// UploadDocumentInput represents an uploaded verification document.
type UploadDocumentInput struct {
	UserID   string
	Step     domain.KYCStepID
	Filename string
	Data     []byte
}

// UploadDocument stores the document and completes the matching step. The
// stored reference carries a fresh submission id so re-uploads never collide.
func (uc *KYCUseCase) UploadDocument(ctx context.Context, input UploadDocumentInput) (*domain.KYCProfile, error) {
	if !documentSteps[input.Step] {
		return nil, fmt.Errorf("step %s does not accept document uploads", input.Step)
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	p, err := uc.profile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%s-%s", input.Step, uuid.NewString(), input.Filename)
	if _, err := uc.docStore.Save(ctx, input.UserID, name, input.Data); err != nil {
		return nil, fmt.Errorf("storing kyc document: %w", err)
	}

	if err := p.Complete(input.Step, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.ReadyToSubmit() && p.Current() == nil {
		// All steps done including the optional one; finalize.
		if err := p.Submit(uc.clock.Now()); err == nil {
			if err := uc.kycRepo.Update(ctx, p); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// SubmitSelfie captures an image from the provided source and completes the
// selfie step. The capture capability is injected so the sequencer never
// touches a camera API directly.
func (uc *KYCUseCase) SubmitSelfie(ctx context.Context, userID string, source ImageSource) (*domain.KYCProfile, error) {
	image, err := source.CaptureImage(ctx)
	if err != nil {
		return nil, fmt.Errorf("capturing selfie: %w", err)
	}
	if len(image) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	p, err := uc.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%s.jpg", domain.StepSelfie, uuid.NewString())
	if _, err := uc.docStore.Save(ctx, userID, name, image); err != nil {
		return nil, fmt.Errorf("storing selfie: %w", err)
	}

	if err := p.Complete(domain.StepSelfie, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Status returns the user's wizard state without mutating it.
func (uc *KYCUseCase) Status(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	return uc.kycRepo.GetByUser(ctx, userID)
}

// MarkFailed records a backend rejection of the current step.
func (uc *KYCUseCase) MarkFailed(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	p, err := uc.kycRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Fail(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Retry reopens a failed step so the user can redo it.
func (uc *KYCUseCase) Retry(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	p, err := uc.kycRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Retry(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Submit finalizes the profile for asynchronous backend review.
func (uc *KYCUseCase) Submit(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	p, err := uc.kycRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Submit(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.kycRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
