package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnwrapsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("create offer: %w", Conflict("already decided"))

	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(fmt.Errorf("plain"), CodeConflict))
}

func TestValidationCarriesFieldDetails(t *testing.T) {
	err := Validation(map[string]string{"images": "at most 4 images"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "at most 4 images", err.Details["images"])
}

func TestAuthTaxonomyStatuses(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, InvalidCredentials("bad code", nil).Status)
	assert.Equal(t, http.StatusConflict, IdentityInUse("taken").Status)
	assert.Equal(t, http.StatusBadRequest, MalformedIdentity("bad phone", nil).Status)
	assert.Equal(t, CodeProfileMissing, ProfileMissing().Code)
}
