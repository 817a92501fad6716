package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"fixbridge/internal/domain/entity"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		el   entity.ElementDescriptor
		want string
	}{
		{
			name: "full element",
			el:   entity.ElementDescriptor{TagName: "DIV", ClassList: []string{"card", "active"}, ID: "main", TextContent: "Hello"},
			want: "<div class=\"card active\" id=\"main\">\n  Hello\n</div>",
		},
		{
			name: "bare element",
			el:   entity.ElementDescriptor{TagName: "DIV"},
			want: "<div></div>",
		},
		{
			name: "empty class list slice",
			el:   entity.ElementDescriptor{TagName: "span", ClassList: []string{}},
			want: "<span></span>",
		},
		{
			name: "id only",
			el:   entity.ElementDescriptor{TagName: "BUTTON", ID: "go"},
			want: `<button id="go"></button>`,
		},
		{
			name: "classes only",
			el:   entity.ElementDescriptor{TagName: "P", ClassList: []string{"lead"}},
			want: `<p class="lead"></p>`,
		},
		{
			name: "text only",
			el:   entity.ElementDescriptor{TagName: "H1", TextContent: "Title"},
			want: "<h1>\n  Title\n</h1>",
		},
		{
			name: "mixed case tag",
			el:   entity.ElementDescriptor{TagName: "SvG"},
			want: "<svg></svg>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.el))
		})
	}
}

func TestDescribe_TruncationBoundary(t *testing.T) {
	exact := strings.Repeat("a", 100)
	over := strings.Repeat("b", 101)

	assert.Equal(t, "<p>\n  "+exact+"\n</p>", Describe(entity.ElementDescriptor{TagName: "p", TextContent: exact}))
	assert.Equal(t, "<p>\n  "+strings.Repeat("b", 100)+"...\n</p>", Describe(entity.ElementDescriptor{TagName: "p", TextContent: over}))
}

func TestDescribe_TruncatesByCharacter(t *testing.T) {
	text := strings.Repeat("é", 101)

	out := Describe(entity.ElementDescriptor{TagName: "p", TextContent: text})

	assert.Contains(t, out, strings.Repeat("é", 100)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 101))
}

func TestDescribe_Deterministic(t *testing.T) {
	el := entity.ElementDescriptor{TagName: "A", ClassList: []string{"x", "y"}, ID: "l", TextContent: "link"}

	first := Describe(el)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Describe(el))
	}
}

func TestPreview(t *testing.T) {
	el := entity.ElementDescriptor{
		TagName:     "DIV",
		ClassList:   []string{"card"},
		ID:          "main",
		TextContent: strings.Repeat("x", 60),
	}

	want := "<div\n  class=\"card\"\n  id=\"main\">\n\nContent: \"" + strings.Repeat("x", 50) + "...\""
	assert.Equal(t, want, Preview(el))
	assert.Equal(t, "<unknown>", Preview(entity.ElementDescriptor{}))
}
