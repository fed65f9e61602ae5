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


// Package storage provides the storage abstraction for knowledge snapshots.
//
// A snapshot is a frozen copy of a knowledge set written once by an operator
// (gitkb seed) and read at startup. Queries never touch storage; the loaded
// entries are handed to knowledge.NewSet and served from memory.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage interface:
//
//	repo, err := badger.NewKnowledgeRepository(backend)  // storage.KnowledgeRepository
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { repo.Close(); backend.Close() }()
//
// # Encoding
//
// Values are encoded with the mus-go serializers generated into the core
// package. Each snapshot stores a digest of its entries, checked on load.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation.
package storage
