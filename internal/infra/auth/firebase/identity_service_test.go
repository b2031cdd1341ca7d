package firebase

import (
	"testing"

	domainerrors "maison/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMapSignInError_BadCredentials(t *testing.T) {
	for _, code := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED"} {
		err := mapSignInError(code)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials), code)
	}
}

func TestMapSignInError_Unknown(t *testing.T) {
	err := mapSignInError("TOO_MANY_ATTEMPTS_TRY_LATER")
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Contains(t, err.Error(), "TOO_MANY_ATTEMPTS_TRY_LATER")
}
