// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// It identifies combination batches. Because UUIDv7 is time-sortable, batch
// ids recorded on derived rows order the same way the batches ran.
package uuidv7

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable, which no caller
// could recover from.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}
	return id.String()
}

// Time extracts the creation time embedded in a UUIDv7 string.
func Time(s string) (time.Time, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("uuidv7: %w", err)
	}
	if id.Version() != 7 {
		return time.Time{}, fmt.Errorf("uuidv7: %s is version %d", s, id.Version())
	}

	// The first 48 bits are the Unix time in milliseconds.
	var ms int64
	for _, b := range id[:6] {
		ms = ms<<8 | int64(b)
	}
	return time.UnixMilli(ms).UTC(), nil
}
