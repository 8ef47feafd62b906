package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("row lock timeout")
	err := Wrap(CodeDependency, cause, "adjust stock")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, "DEPENDENCY_ERROR: adjust stock", err.Error())
}

func TestAsFindsTypedErrorThroughChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeStateConflict, "task already assigned")
	wrapped := fmt.Errorf("pull putaway task: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeStateConflict, typed.Code())
	assert.Equal(t, "task already assigned", typed.Message())
}

func TestAsReturnsNilForUntyped(t *testing.T) {
	t.Parallel()

	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NOT_A_CODE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWithDetailsRoundTrip(t *testing.T) {
	t.Parallel()

	details := map[string]any{"shortages": []string{"SKU-1"}}
	err := New(CodeStateConflict, "wave cannot be fulfilled").WithDetails(details)
	assert.Equal(t, details, err.Details())
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, cause, "append movement")

	dump := Dump(err)
	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Empty(t, dump.PGCode)
}
