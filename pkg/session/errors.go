// Copyright 2025 The Sidekick Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"errors"
	"fmt"
	"time"
)

// NotInitializedError is returned when an operation targets a session
// that was never created or has been destroyed.
type NotInitializedError struct {
	ID string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("session %s not initialized (create it first)", e.ID)
}

// IsNotInitialized reports whether err is a NotInitializedError.
func IsNotInitialized(err error) bool {
	var target *NotInitializedError
	return errors.As(err, &target)
}

// TimeoutError is returned when a scheduled operation exceeds its budget.
// The operation itself keeps its cancelled context; only the caller's
// wait is released.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("session operation %s timed out after %s", e.Op, e.Timeout)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// ErrManagerClosed is returned when the manager has been shut down.
var ErrManagerClosed = errors.New("session manager is closed")
