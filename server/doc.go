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


// Package server exposes an assistant over HTTP.
//
// Routes live under /api:
//
//	POST /api/agent   {"query": "..."} -> {"success", "response", "timestamp"}
//	GET  /api/topics  -> {"success", "topics", "count"}
//	GET  /api/health  -> {"success", "status", "timestamp", "knowledge"}
//
// Every response body is JSON, including 404s for unknown routes and 500s
// for handler panics. Each request carries an X-Request-ID, echoed from the
// client when present and generated otherwise, which is attached to the
// access log line and stored in the request context.
//
// When ServerConfig.StaticDir is set, files under it are served at /.
package server
