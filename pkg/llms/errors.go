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

package llms

import (
	"errors"
	"fmt"
)

// BackendUnavailableError reports that the inference backend could not be
// reached. It is fatal to the current query but the session remains usable
// once the backend recovers.
type BackendUnavailableError struct {
	Host string
	Err  error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("inference backend unreachable at %s (is the server running?): %v", e.Host, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// IsBackendUnavailable reports whether err wraps a BackendUnavailableError.
func IsBackendUnavailable(err error) bool {
	var target *BackendUnavailableError
	return errors.As(err, &target)
}
