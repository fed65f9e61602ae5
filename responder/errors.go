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


package responder

import "errors"

var (
	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrNoContext is returned when Compose is given a result without items.
	ErrNoContext = errors.New("retrieval result has no context")

	// ErrMalformedContext is returned when a retrieved item cannot be quoted.
	ErrMalformedContext = errors.New("malformed retrieval context")

	// ErrResponseFailed wraps a panic recovered while answering a query.
	ErrResponseFailed = errors.New("response generation failed")

	// ErrInvalidCacheTTL is returned when a non-positive cache TTL is configured.
	ErrInvalidCacheTTL = errors.New("cache ttl must be positive")
)
