package utils_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-storefront-api/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "x", utils.Value(utils.Ptr("x")))
}

func TestValueOr(t *testing.T) {
	require.Equal(t, 2.5, utils.ValueOr(nil, 2.5))
	require.Equal(t, 1.0, utils.ValueOr(utils.Ptr(1.0), 2.5))
}

func TestMapPtr(t *testing.T) {
	require.Nil(t, utils.MapPtr(nil, strings.TrimSpace))
	require.Equal(t, "ana", *utils.MapPtr(utils.Ptr(" ana "), strings.TrimSpace))
}
