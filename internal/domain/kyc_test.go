package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestProfile() *KYCProfile {
	return NewKYCProfile("kyc-1", "user-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestKYCProfile_AdvancesOneStepAtATime(t *testing.T) {
	p := newTestProfile()
	now := p.CreatedAt

	order := []KYCStepID{StepPersonalInfo, StepIdentity, StepAddress, StepSelfie, StepIncome}
	for i, id := range order {
		cur := p.Current()
		if cur == nil || cur.ID != id {
			t.Fatalf("step %d: expected current %s, got %+v", i, id, cur)
		}
		if cur.Status != StepInProgress {
			t.Fatalf("step %d: expected in_progress, got %s", i, cur.Status)
		}
		if err := p.Complete(id, now); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
	}

	if p.Current() != nil {
		t.Error("expected no current step after completing all")
	}
}

func TestKYCProfile_CompleteOutOfOrder(t *testing.T) {
	p := newTestProfile()

	err := p.Complete(StepSelfie, p.CreatedAt)
	if !errors.Is(err, ErrKYCStepOutOfOrder) {
		t.Errorf("expected ErrKYCStepOutOfOrder, got %v", err)
	}
}

func TestKYCProfile_FailedStepRetry(t *testing.T) {
	p := newTestProfile()
	now := p.CreatedAt

	if err := p.Fail(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Current().Status != StepFailed {
		t.Fatalf("expected failed status, got %s", p.Current().Status)
	}

	// Cannot complete a failed step without retrying first; the wizard is
	// still positioned on it, so Complete succeeds only after Retry.
	if err := p.Retry(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Current().Status != StepInProgress {
		t.Fatalf("expected in_progress after retry, got %s", p.Current().Status)
	}

	if err := p.Complete(StepPersonalInfo, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Current().ID != StepIdentity {
		t.Errorf("expected advancement to identity step, got %s", p.Current().ID)
	}
}

func TestKYCProfile_RetryRequiresFailure(t *testing.T) {
	p := newTestProfile()

	err := p.Retry(p.CreatedAt)
	if !errors.Is(err, ErrKYCStepNotFailed) {
		t.Errorf("expected ErrKYCStepNotFailed, got %v", err)
	}
}

func TestKYCProfile_SubmitWithOptionalStepPending(t *testing.T) {
	p := newTestProfile()
	now := p.CreatedAt

	for _, id := range []KYCStepID{StepPersonalInfo, StepIdentity, StepAddress, StepSelfie} {
		if err := p.Complete(id, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Income verification is optional; submission is allowed without it.
	if !p.ReadyToSubmit() {
		t.Fatal("expected profile ready to submit")
	}
	if err := p.Submit(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Terminal: no further mutation.
	if err := p.Complete(StepIncome, now); !errors.Is(err, ErrKYCAlreadySubmitted) {
		t.Errorf("expected ErrKYCAlreadySubmitted, got %v", err)
	}
	if err := p.Retry(now); !errors.Is(err, ErrKYCAlreadySubmitted) {
		t.Errorf("expected ErrKYCAlreadySubmitted, got %v", err)
	}
	if err := p.Submit(now); !errors.Is(err, ErrKYCAlreadySubmitted) {
		t.Errorf("expected ErrKYCAlreadySubmitted, got %v", err)
	}
}

func TestKYCProfile_SubmitBeforeRequiredStepsDone(t *testing.T) {
	p := newTestProfile()

	if p.ReadyToSubmit() {
		t.Error("fresh profile must not be ready to submit")
	}
	if err := p.Submit(p.CreatedAt); !errors.Is(err, ErrKYCStepOutOfOrder) {
		t.Errorf("expected ErrKYCStepOutOfOrder, got %v", err)
	}
}
