// Copyright 2025 Poiesic Systems
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


package ai

import "errors"

var (
	// ErrMissingCredential indicates a vendor provider was selected without an API key.
	ErrMissingCredential = errors.New("API key not configured")

	// ErrEmptyInput indicates the input text was empty or whitespace.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrInputTooLarge indicates the input exceeded Config.MaxInputChars.
	ErrInputTooLarge = errors.New("input text too large")

	// ErrMalformedResponse indicates the backend answered without usable content.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
