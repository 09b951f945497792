package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"department-service/internal/model"
	"department-service/internal/token"
)

func testUser(role string) *model.User {
	return &model.User{
		ID:    uuid.New(),
		Email: "a@x.com",
		Name:  "A",
		Role:  role,
	}
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := token.NewManager("test-secret", 7*24*time.Hour)
	user := testUser(model.RoleStudent)

	signed, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, model.RoleStudent, claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestManager_Verify_Expired(t *testing.T) {
	m := token.NewManager("test-secret", -time.Hour)

	signed, err := m.Issue(testUser(model.RoleAdmin))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	issuer := token.NewManager("secret-one", time.Hour)
	verifier := token.NewManager("secret-two", time.Hour)

	signed, err := issuer.Issue(testUser(model.RoleStudent))
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

// Expired and tampered tokens must be indistinguishable to callers.
func TestManager_Verify_UniformFailure(t *testing.T) {
	good := token.NewManager("test-secret", time.Hour)

	expired, err := token.NewManager("test-secret", -time.Hour).Issue(testUser(model.RoleStudent))
	require.NoError(t, err)

	tampered, err := token.NewManager("other-secret", time.Hour).Issue(testUser(model.RoleStudent))
	require.NoError(t, err)

	_, errExpired := good.Verify(expired)
	_, errTampered := good.Verify(tampered)
	require.Equal(t, errExpired, errTampered)
}
