// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

func TestCode(t *testing.T) {
	require.Equal(t, errors.OK, errors.Code(nil))
	require.Equal(t, errors.UnknownError, errors.Code(fmt.Errorf("plain")))

	err := errors.MissingActiveAuthority.WithFormat("missing active authority of account %d", 7)
	require.Equal(t, errors.MissingActiveAuthority, errors.Code(err))

	wrapped := fmt.Errorf("outer: %w", err)
	require.Equal(t, errors.MissingActiveAuthority, errors.Code(wrapped))
}

func TestIs(t *testing.T) {
	err := errors.DuplicateSignature.With("duplicate signature detected")
	require.True(t, errors.Is(err, errors.DuplicateSignature))
	require.False(t, errors.Is(err, errors.IrrelevantSignature))

	wrapped := errors.BadRequest.Wrap(err)
	require.True(t, errors.Is(wrapped, errors.DuplicateSignature))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, errors.UnknownError.Wrap(nil))
}

func TestMissingAuthorityKinds(t *testing.T) {
	for _, s := range []errors.Status{
		errors.MissingOtherAuthority,
		errors.MissingOwnerAuthority,
		errors.MissingActiveAuthority,
	} {
		require.True(t, s.IsMissingAuthority(), s)
	}
	require.False(t, errors.IrrelevantSignature.IsMissingAuthority())
}
