package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/manut/internal/core/errs"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Cofre", want: "Cofre"},
		{in: "  Ar   condicionado  ", want: "Ar condicionado"},
		{in: "Fechadura\tBanheiro\n", want: "Fechadura Banheiro"},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanAddItem(t *testing.T) {
	tests := []struct {
		name     string
		ctx      AddItemContext
		wantKind error
	}{
		{
			name: "can add new name",
			ctx:  AddItemContext{Name: "Interfone"},
		},
		{
			name:     "blank name is invalid",
			ctx:      AddItemContext{Name: ""},
			wantKind: errs.ErrValidation,
		},
		{
			name:     "case-insensitive duplicate",
			ctx:      AddItemContext{Name: "cofre", ExistingName: "Cofre"},
			wantKind: errs.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAddItem(tt.ctx).Error()
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected allowed, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %v", err, tt.wantKind)
			}
		})
	}

	// A duplicate must not be reported as a plain validation failure.
	err := CanAddItem(AddItemContext{Name: "cofre", ExistingName: "Cofre"}).Error()
	if errors.Is(err, errs.ErrValidation) {
		t.Errorf("duplicate should not be ErrValidation: %v", err)
	}
}

func TestDefaultItemsAreNormalizedAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range DefaultItems {
		if NormalizeName(name) != name {
			t.Errorf("default item %q is not normalized", name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			t.Errorf("duplicate default item %q", name)
		}
		seen[key] = true
	}
}
