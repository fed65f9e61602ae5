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


// Package knowledge holds the static knowledge base that queries are answered from.
//
// A Set is built once and then only read. It can come from three places:
//   - Default, the built-in Git knowledge base
//   - a YAML file, via LoadFile or Decode
//   - a BadgerDB snapshot written by the storage/badger package
//
// The YAML format is a top-level sequence:
//
//	- id: 1
//	  topic: What is Git
//	  content: Git is a distributed version control system...
//
// Every loader validates entries and rejects duplicate ids before a Set exists,
// so code holding a *Set never has to check it again.
package knowledge
