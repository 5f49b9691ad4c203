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


// Package ai provides abstractions for the AI services used by tweetlabel.
//
// The labeling pipeline depends on two capabilities:
//
//   - Classifier: answers whether a single tweet text is political
//   - Embedder: turns a batch of texts into vectors, one per input, in order
//
// AIProvider aggregates both so they share configuration.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/cache: Decorators that memoize answers in a storage.ResponseCache
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewClassifier, etc.) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockClassifier, mock.NewMockEmbedder) return CONCRETE types so
// tests can inject behavior and read call counts.
//
//	mockClassify := mock.NewMockClassifier()
//	mockClassify.ClassifyFunc = func(ctx context.Context, text string) (bool, error) { ... }
//	count := mockClassify.CallCount()
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithToken(os.Getenv("OPENAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	political, err := provider.Classifier().Classify(ctx, text)
//	vectors, err := provider.Embedder().EmbedTexts(ctx, texts)
package ai
