package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorSentinelMatching(t *testing.T) {
	wrapped := fmt.Errorf("parsing exports/2024.csv: %w",
		ErrHeaderNotFound.WithMessage("no header row in first 50 lines"))

	assert.True(t, stderrors.Is(wrapped, ErrHeaderNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrNoTrips))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := Wrap(cause, "FILE_NOT_FOUND", "cannot read export")

	require.ErrorIs(t, err, cause)
	assert.True(t, stderrors.Is(err, ErrFileNotFound))

	var app *AppError
	require.ErrorAs(t, error(err), &app)
	assert.Equal(t, "FILE_NOT_FOUND", app.Code)
}

func TestAppErrorMessages(t *testing.T) {
	assert.Equal(t, "NO_TRIPS: export parsed but contained no Bicing trips", ErrNoTrips.Error())

	withCause := Wrap(stderrors.New("boom"), "X", "failed")
	assert.Equal(t, "X: failed: boom", withCause.Error())
}
