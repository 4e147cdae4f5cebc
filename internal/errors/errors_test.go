package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("classified error", func(t *testing.T) {
		err := apperrors.NotFound("user not found")
		require.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("wrapped classified error", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", apperrors.Validation("bad email"))
		require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		require.Equal(t, apperrors.KindInternal, apperrors.KindOf(stderrors.New("boom")))
	})
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[apperrors.Kind]int{
		apperrors.KindValidation:     http.StatusBadRequest,
		apperrors.KindAuthentication: http.StatusUnauthorized,
		apperrors.KindAuthorization:  http.StatusForbidden,
		apperrors.KindNotFound:       http.StatusNotFound,
		apperrors.KindRateLimited:    http.StatusTooManyRequests,
		apperrors.KindInternal:       http.StatusInternalServerError,
	}
	for kind, status := range cases {
		require.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestIsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperrors.Authentication("invalid credentials"))
	require.True(t, apperrors.Is(err, apperrors.ErrAuthentication))
	require.False(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := apperrors.Internal("database unavailable", stderrors.New("dial tcp 10.0.0.1:5432"))
	require.Equal(t, "internal error", apperrors.PublicMessage(err))
	require.Contains(t, err.Error(), "dial tcp")

	require.Equal(t, "bad email", apperrors.PublicMessage(apperrors.Validation("bad email")))
	require.Equal(t, "internal error", apperrors.PublicMessage(stderrors.New("x")))
}

func TestWrapf(t *testing.T) {
	require.Nil(t, apperrors.Wrapf(nil, "ctx"))

	base := apperrors.NotFound("missing")
	err := apperrors.Wrapf(base, "[Repo %s]", "GetByID")
	require.EqualError(t, err, "[Repo GetByID]: not_found: missing")
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
