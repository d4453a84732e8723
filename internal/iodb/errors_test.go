package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := ConnectionError("localhost", 5432, "taxodrift", "postgres", cause)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 4)
	assert.ErrorIs(t, gnErr.Err, cause)
}

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, ErrNotConnected)
}
