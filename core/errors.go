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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates a KnowledgeEntry failed validation.
	ErrInvalidEntry = errors.New("invalid knowledge entry")

	// ErrZeroID indicates an entry has no identifier.
	ErrZeroID = errors.New("id cannot be zero")

	// ErrEmptyTopic indicates the Topic field is empty.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrDuplicateID indicates two entries in one set share an identifier.
	ErrDuplicateID = errors.New("duplicate entry id")
)
