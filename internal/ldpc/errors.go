/*
NAME
  errors.go

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package ldpc

import "github.com/pkg/errors"

// ErrInvalidLength is returned when the encoder's input does not match
// the code's K.
var ErrInvalidLength = errors.New("ldpc: invalid input length")

// ErrLLRLength is returned when the decoder's channel LLR vector does
// not match the code's N.
var ErrLLRLength = errors.New("ldpc: invalid llr vector length")
