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


// Package search provides lexical retrieval over a knowledge set.
//
// The Retriever scores every entry against a query with the Jaccard
// coefficient of their word sets. Words are split on whitespace, lowercased,
// and stripped of leading and trailing punctuation. Scoring covers the entry's
// topic and content together.
//
// Ranking sorts by score (stable, so ties keep knowledge-set order), keeps the
// top K, and then drops entries that share no words with the query. Because
// truncation happens first, a query may yield fewer than K results even when
// lower-ranked entries have positive scores.
//
// DocumentRetriever adapts a Retriever to the langchaingo schema.Retriever
// interface so the lexical ranking can be dropped into langchaingo chains.
package search
