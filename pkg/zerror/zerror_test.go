package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/price-tracker/pkg/zerror"
)

func TestZError(t *testing.T) {
	notFound := zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

	t.Run("Should match sentinel after wrapping parent", func(t *testing.T) {
		parent := errors.New("no rows")
		err := fmt.Errorf("get product: %w", notFound.WrapParent(parent))

		assert.ErrorIs(t, err, notFound)
		assert.ErrorIs(t, err, parent)
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewNotFound("OTHER_NOT_FOUND", "other")
		assert.NotErrorIs(t, notFound, other)
	})

	t.Run("Should keep predefined error untouched", func(t *testing.T) {
		_ = notFound.WrapParent(errors.New("boom")).WithMsg("changed")

		assert.Nil(t, notFound.Parent())
		assert.Equal(t, "product not found", notFound.Msg())
		assert.Equal(t, "Code=PRODUCT_NOT_FOUND, Msg=product not found", notFound.Error())
	})

	t.Run("Should extract with errors.As", func(t *testing.T) {
		err := fmt.Errorf("layer: %w", zerror.NewServiceUnavailable("STORE_UNAVAILABLE", "store unavailable"))

		var zErr zerror.ZError
		assert.True(t, errors.As(err, &zErr))
		assert.Equal(t, zerror.StatusServiceUnavailable, zErr.Status())
		assert.Equal(t, "SERVICE_UNAVAILABLE", zErr.Status().String())
	})
}
