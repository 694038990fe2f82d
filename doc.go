// Copyright 2025 Quester Labs
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


// Package docquery answers questions from a directory of documents.
//
// An Engine indexes the files under a root (Build), then answers questions
// grounded in that corpus with source citations (Ask). Embedding and
// generation go through injected provider ports; any OpenAI-compatible
// endpoint works, including local model servers.
//
//	engine, err := docquery.New(docquery.Config{Root: "./docs"})
//	if err != nil { ... }
//	defer engine.Close()
//
//	report, err := engine.Build(ctx)
//	answer, err := engine.Ask(ctx, "What is the refund policy?")
//
// Rebuilds are atomic: Refresh assembles the new index completely before
// swapping it in, and concurrent questions are answered by the previous
// generation until the swap.
package docquery
