package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/PrathamBhadange/RehabAI/internal/models"
	"github.com/PrathamBhadange/RehabAI/internal/users"
)

func TestDemoBackend_SeededAccounts(t *testing.T) {
	b := NewDemoBackend()
	ctx := context.Background()

	patient, err := b.Login(ctx, DemoPatientEmail, DemoPassword)
	if err != nil {
		t.Fatalf("seeded patient login failed: %v", err)
	}
	if patient.Role != models.RolePatient {
		t.Fatalf("unexpected role: %s", patient.Role)
	}

	provider, err := b.Login(ctx, DemoProviderEmail, DemoPassword)
	if err != nil {
		t.Fatalf("seeded provider login failed: %v", err)
	}
	if provider.Role != models.RoleProvider {
		t.Fatalf("unexpected role: %s", provider.Role)
	}
}

func TestDemoBackend_LoginFailureCarriesHint(t *testing.T) {
	b := NewDemoBackend()
	ctx := context.Background()

	_, errWrongPw := b.Login(ctx, DemoPatientEmail, "nope")
	_, errUnknown := b.Login(ctx, "nobody@demo.com", DemoPassword)

	// identical error for wrong password and unknown email
	if !errors.Is(errWrongPw, users.ErrInvalidCredentials) || !errors.Is(errUnknown, users.ErrInvalidCredentials) {
		t.Fatalf("expected users.ErrInvalidCredentials, got %v / %v", errWrongPw, errUnknown)
	}
	if errWrongPw.Error() != errUnknown.Error() {
		t.Fatalf("messages differ: %q vs %q", errWrongPw, errUnknown)
	}
	if !strings.Contains(errWrongPw.Error(), DemoPatientEmail) {
		t.Fatalf("expected demo hint in error, got %q", errWrongPw)
	}
}

func TestDemoBackend_RegisterThenLogin(t *testing.T) {
	b := NewDemoBackend()
	ctx := context.Background()

	u, err := b.Register(ctx, RegisterInput{
		Email: "new@demo.com", Password: "pw1", FirstName: "N", LastName: "U", Role: models.RolePatient,
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !strings.HasPrefix(u.ID, "demo-patient-") {
		t.Fatalf("unexpected identifier format: %s", u.ID)
	}

	got, err := b.Login(ctx, "new@demo.com", "pw1")
	if err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned a different record: %s vs %s", got.ID, u.ID)
	}

	prof, err := b.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if prof.Email != "new@demo.com" {
		t.Fatalf("unexpected profile: %+v", prof)
	}
}

func TestDemoBackend_DuplicateEmail(t *testing.T) {
	b := NewDemoBackend()
	ctx := context.Background()

	_, err := b.Register(ctx, RegisterInput{
		Email: DemoPatientEmail, Password: "pw", FirstName: "X", LastName: "Y", Role: models.RolePatient,
	})
	if !errors.Is(err, users.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for seeded email, got %v", err)
	}
}

func TestDemoBackend_ProfileNotFound(t *testing.T) {
	b := NewDemoBackend()
	if _, err := b.GetProfile(context.Background(), "demo-patient-0"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// concurrent registrations must neither race nor produce duplicate identifiers
func TestDemoBackend_ConcurrentRegister(t *testing.T) {
	b := NewDemoBackend()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = b.Register(ctx, RegisterInput{
				Email:     fmt.Sprintf("c%d@demo.com", i),
				Password:  "pw",
				FirstName: "C",
				LastName:  "U",
				Role:      models.RolePatient,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("register %d failed: %v", i, err)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := map[string]bool{}
	for _, u := range b.users {
		if seen[u.ID] {
			t.Fatalf("duplicate identifier generated: %s", u.ID)
		}
		seen[u.ID] = true
	}
	if len(b.users) != n+2 {
		t.Fatalf("expected %d records, got %d", n+2, len(b.users))
	}
}
