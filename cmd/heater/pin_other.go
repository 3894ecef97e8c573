// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package main

import (
	"runtime"

	"github.com/pkg/errors"
)

func pinToCore(int) error {
	return errors.Errorf("core pinning is not supported on %s", runtime.GOOS)
}
