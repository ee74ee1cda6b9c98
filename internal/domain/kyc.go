package domain

import "time"

// KYCStepID identifies a verification step in the onboarding wizard.
type KYCStepID string

const (
	StepPersonalInfo KYCStepID = "personal_info"
	StepIdentity     KYCStepID = "identity_verification"
	StepAddress      KYCStepID = "address_verification"
	StepSelfie       KYCStepID = "selfie_verification"
	StepIncome       KYCStepID = "income_verification"
)

// KYCStepStatus is the state of a single step.
type KYCStepStatus string

const (
	StepPending    KYCStepStatus = "pending"
	StepInProgress KYCStepStatus = "in_progress"
	StepCompleted  KYCStepStatus = "completed"
	StepFailed     KYCStepStatus = "failed"
)

// KYCStep is one stage of the verification wizard.
type KYCStep struct {
	ID          KYCStepID
	Title       string
	Description string
	Status      KYCStepStatus
	Required    bool
}

// NewKYCSteps returns the canonical ordered step sequence. Income
// verification is the only optional step and sits last.
func NewKYCSteps() []KYCStep {
	return []KYCStep{
		{ID: StepPersonalInfo, Title: "Personal Information", Description: "Name, date of birth and contact details", Status: StepInProgress, Required: true},
		{ID: StepIdentity, Title: "Identity Verification", Description: "Government-issued ID upload", Status: StepPending, Required: true},
		{ID: StepAddress, Title: "Address Verification", Description: "Proof of address document", Status: StepPending, Required: true},
		{ID: StepSelfie, Title: "Selfie Verification", Description: "Live selfie matching the uploaded ID", Status: StepPending, Required: true},
		{ID: StepIncome, Title: "Income Verification", Description: "Source of income documentation", Status: StepPending, Required: false},
	}
}

// KYCProfile tracks a customer's progress through the wizard. Steps only move
// forward; the sole backward-looking edge is failed -> in_progress via Retry.
type KYCProfile struct {
	ID          string
	UserID      string
	Steps       []KYCStep
	CurrentStep int
	Submitted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewKYCProfile starts a fresh profile positioned on the first step.
func NewKYCProfile(id, userID string, now time.Time) *KYCProfile {
	return &KYCProfile{
		ID:          id,
		UserID:      userID,
		Steps:       NewKYCSteps(),
		CurrentStep: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Current returns the step the wizard is positioned on, or nil when all
// steps are done.
func (p *KYCProfile) Current() *KYCStep {
	if p.CurrentStep >= len(p.Steps) {
		return nil
	}
	return &p.Steps[p.CurrentStep]
}

// Complete marks the current step completed and advances by exactly one.
// The step being completed must match the wizard position.
func (p *KYCProfile) Complete(id KYCStepID, now time.Time) error {
	if p.Submitted {
		return ErrKYCAlreadySubmitted
	}
	step := p.Current()
	if step == nil || step.ID != id {
		return ErrKYCStepOutOfOrder
	}
	step.Status = StepCompleted
	p.CurrentStep++
	if next := p.Current(); next != nil {
		next.Status = StepInProgress
	}
	p.UpdatedAt = now
	return nil
}

// Fail marks the current step failed. The wizard stays positioned on it.
func (p *KYCProfile) Fail(now time.Time) error {
	if p.Submitted {
		return ErrKYCAlreadySubmitted
	}
	step := p.Current()
	if step == nil {
		return ErrKYCStepOutOfOrder
	}
	step.Status = StepFailed
	p.UpdatedAt = now
	return nil
}

// Retry moves a failed current step back to in_progress so the user can redo
// it. This edge is not reachable any other way.
func (p *KYCProfile) Retry(now time.Time) error {
	if p.Submitted {
		return ErrKYCAlreadySubmitted
	}
	step := p.Current()
	if step == nil || step.Status != StepFailed {
		return ErrKYCStepNotFailed
	}
	step.Status = StepInProgress
	p.UpdatedAt = now
	return nil
}

// ReadyToSubmit reports whether every required step is completed.
func (p *KYCProfile) ReadyToSubmit() bool {
	for _, step := range p.Steps {
		if step.Required && step.Status != StepCompleted {
			return false
		}
	}
	return true
}

// Submit finalizes the profile for backend review. No client-side mutation is
// allowed afterwards.
func (p *KYCProfile) Submit(now time.Time) error {
	if p.Submitted {
		return ErrKYCAlreadySubmitted
	}
	if !p.ReadyToSubmit() {
		return ErrKYCStepOutOfOrder
	}
	p.Submitted = true
	p.UpdatedAt = now
	return nil
}
