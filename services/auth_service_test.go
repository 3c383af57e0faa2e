package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth := NewAuthService("s3cret")

	_, err := auth.Login("wrong")
	assert.Error(t, err)
	assert.False(t, auth.Validate(""))

	token, err := auth.Login("s3cret")
	assert.NoError(t, err)
	assert.Len(t, token, 64)
	assert.True(t, auth.Validate(token))
	assert.False(t, auth.Validate("other"))
}

func TestAuthService_NewLoginRotatesToken(t *testing.T) {
	auth := NewAuthService("s3cret")

	first, err := auth.Login("s3cret")
	assert.NoError(t, err)
	second, err := auth.Login("s3cret")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.False(t, auth.Validate(first))
	assert.True(t, auth.Validate(second))
}

func TestAuthService_ConcurrentLoginAndValidate(t *testing.T) {
	auth := NewAuthService("s3cret")

	token, err := auth.Login("s3cret")
	assert.NoError(t, err)

	// Logins and validations arrive on separate request goroutines.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := auth.Login("s3cret")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			auth.Validate(token)
		}()
	}
	wg.Wait()

	latest, err := auth.Login("s3cret")
	assert.NoError(t, err)
	assert.True(t, auth.Validate(latest))
}
