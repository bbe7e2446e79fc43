package repository

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The users table defines the credential column as password_hash
// (migrations/0001_init.sql). A query naming a bare "password" column would
// fail with undefined_column on every register and login.
func TestUserQueriesUseSchemaCredentialColumn(t *testing.T) {
	barePassword := regexp.MustCompile(`\bpassword\b`)

	queries := map[string]string{
		"insert": insertUserQuery,
		"select": selectUserByUsernameQuery,
		"update": updateLastLoginQuery,
	}

	for name, q := range queries {
		assert.NotRegexp(t, barePassword, q, "%s query must not reference a bare password column", name)
	}

	assert.Contains(t, insertUserQuery, "password_hash")
	assert.Contains(t, selectUserByUsernameQuery, "password_hash")
}
