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

import (
	"fmt"
	"strings"
)

// ValidateEntry validates a KnowledgeEntry according to domain rules.
//
// Validation rules:
//   - Id must not be zero
//   - Topic must not be empty or whitespace
//   - Content must not be empty or whitespace
func ValidateEntry(entry *KnowledgeEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrZeroID)
	}

	if strings.TrimSpace(entry.Topic) == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidEntry, entry.Id, ErrEmptyTopic)
	}

	if strings.TrimSpace(entry.Content) == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidEntry, entry.Id, ErrEmptyContent)
	}

	return nil
}

// ValidateEntries validates every entry and checks that identifiers are unique.
func ValidateEntries(entries []KnowledgeEntry) error {
	seen := make(map[ID]struct{}, len(entries))
	for i := range entries {
		if err := ValidateEntry(&entries[i]); err != nil {
			return err
		}
		if _, ok := seen[entries[i].Id]; ok {
			return fmt.Errorf("%w: %w: %d", ErrInvalidEntry, ErrDuplicateID, entries[i].Id)
		}
		seen[entries[i].Id] = struct{}{}
	}
	return nil
}
