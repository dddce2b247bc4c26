// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import "github.com/go-jsonsax/jsonsax/internal/jsonlex"

// NumberFlags records grammar features observed in a number literal.
type NumberFlags = jsonlex.NumberFlags

const (
	IsNegative                = jsonlex.IsNegative
	IsHex                     = jsonlex.IsHex
	ContainsDecimalPoint      = jsonlex.ContainsDecimalPoint
	ContainsExponent          = jsonlex.ContainsExponent
	ContainsNegativeExponent  = jsonlex.ContainsNegativeExponent
)
