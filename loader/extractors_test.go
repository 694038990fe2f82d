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


package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "headings stripped",
			input:    "# Title\n\n## Section\n\nBody text.",
			expected: "Title\n\nSection\n\nBody text.",
		},
		{
			name:     "fenced code block dropped",
			input:    "Before.\n\n```go\nfunc main() {}\n```\n\nAfter.",
			expected: "Before.\n\n\n\nAfter.",
		},
		{
			name:     "inline code dropped",
			input:    "Run `make build` to compile.",
			expected: "Run  to compile.",
		},
		{
			name:     "link text kept, target dropped",
			input:    "See [the docs](https://example.com/docs) for details.",
			expected: "See the docs for details.",
		},
		{
			name:     "image removed entirely",
			input:    "Diagram: ![arch](img/arch.png) shown above.",
			expected: "Diagram:  shown above.",
		},
		{
			name:     "bold and blockquote markers removed",
			input:    "> **Important**: read this.",
			expected: "Important: read this.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractMarkdown("test.md", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tags stripped",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello\nworld",
		},
		{
			name:     "script and style removed",
			input:    "<style>p{color:red}</style><p>Visible</p><script>alert(1)</script>",
			expected: "Visible",
		},
		{
			name:     "entities decoded",
			input:    "<p>Fish &amp; chips &lt;now&gt;</p>",
			expected: "Fish & chips <now>",
		},
		{
			name:     "blank runs collapsed",
			input:    "<div><p>One</p></div>\n\n\n\n<div><p>Two</p></div>",
			expected: "One\n\nTwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractHTML("test.html", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	t.Run("valid utf8 passes through", func(t *testing.T) {
		got, err := ExtractPlainText("a.txt", []byte("héllo\nwörld"))
		require.NoError(t, err)
		assert.Equal(t, "héllo\nwörld", got)
	})

	t.Run("invalid utf8 rejected", func(t *testing.T) {
		_, err := ExtractPlainText("a.txt", []byte{0xff, 0xfe})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestExtractPDF(t *testing.T) {
	_, err := ExtractPDF("report.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDefaultExtensions(t *testing.T) {
	exts := DefaultExtensions()
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".pdf")
	for _, ext := range exts {
		assert.Equal(t, byte('.'), ext[0])
	}
}
