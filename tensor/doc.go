// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the host-side types shared by the tensorgpu
// backends: shapes, element constraints and host data buffers.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorgpu/backend/webgpu"
//	    "github.com/born-ml/tensorgpu/tensor"
//	)
//
//	func main() {
//	    data, err := tensor.NewData([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    t, err := webgpu.FromData(data, webgpu.DefaultDevice)
//	    ...
//	}
//
// # Elements
//
// Device tensors hold 32-bit elements. Float tensors use float32, integer
// tensors int32 or uint32, and boolean tensors are stored as uint32 values
// of 0 or 1. Host data of bool is encoded with EncodeBool before upload.
//
// # Broadcasting
//
// Binary operations broadcast operands of equal rank: every dimension must
// either match or be 1 on one side.
//
//	a := tensor.Shape{3, 1}
//	b := tensor.Shape{3, 5}
//	out, _ := tensor.BroadcastShapes(a, b) // [3, 5]
package tensor
