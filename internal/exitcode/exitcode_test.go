package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskctl/internal/auth"
	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/validate"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"validation", &validate.Error{Message: "x"}, UserError},
		{"login required", session.ErrLoginRequired, AuthError},
		{"wrapped corrupt", fmt.Errorf("load: %w", session.ErrCorrupt), AuthError},
		{"no token", auth.ErrNoToken, AuthError},
		{"store", &session.StoreError{Op: "write", Err: errors.New("read-only")}, AuthError},
		{"api", service.NewAPIError(401, "Unauthorized"), BackendError},
		{"wrapped transport", fmt.Errorf("list: %w", &service.TransportError{Err: errors.New("dial")}), BackendError},
		{"other", errors.New("bad flag"), UserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}
