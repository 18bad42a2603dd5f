package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTrailingLink(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantBody string
		wantLink string
	}{
		{
			name:     "no link",
			text:     "call the dentist",
			wantBody: "call the dentist",
		},
		{
			name:     "trailing https link",
			text:     "read this https://example.com/post",
			wantBody: "read this",
			wantLink: "https://example.com/post",
		},
		{
			name:     "trailing http link",
			text:     "check http://example.com",
			wantBody: "check",
			wantLink: "http://example.com",
		},
		{
			name:     "bare link becomes its own title",
			text:     "https://example.com/post",
			wantBody: "https://example.com/post",
			wantLink: "https://example.com/post",
		},
		{
			name:     "link in the middle stays in the text",
			text:     "compare https://example.com with the docs",
			wantBody: "compare https://example.com with the docs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, link := splitTrailingLink(tt.text)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}
