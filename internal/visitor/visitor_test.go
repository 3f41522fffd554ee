package visitor_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/linkmetry/linkmetry/internal/visitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify_NewVisitor(t *testing.T) {
	ident := visitor.NewIdentifier(false)

	id, cookie := ident.Identify(nil)

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	require.NotNil(t, cookie)
	assert.Equal(t, visitor.CookieName, cookie.Name)
	assert.Equal(t, id, cookie.Value)
	assert.Equal(t, 365*24*60*60, cookie.MaxAge)
	assert.False(t, cookie.Secure)
	assert.False(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestIdentify_ReturningVisitor(t *testing.T) {
	ident := visitor.NewIdentifier(false)

	first, issued := ident.Identify(nil)
	require.NotNil(t, issued)

	second, cookie := ident.Identify(&http.Cookie{Name: visitor.CookieName, Value: first})

	assert.Equal(t, first, second)
	assert.Nil(t, cookie, "existing cookie must not be rotated")
}

func TestIdentify_EmptyCookieTreatedAsAbsent(t *testing.T) {
	ident := visitor.NewIdentifier(false)

	id, cookie := ident.Identify(&http.Cookie{Name: visitor.CookieName, Value: ""})

	assert.NotEmpty(t, id)
	require.NotNil(t, cookie)
	assert.Equal(t, id, cookie.Value)
}

func TestIdentify_SecureInProduction(t *testing.T) {
	ident := visitor.NewIdentifier(true)

	_, cookie := ident.Identify(nil)

	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
