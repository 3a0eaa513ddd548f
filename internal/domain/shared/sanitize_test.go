package shared_test

import (
	"testing"

	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain name unchanged",
			input: "Summer Vacation 2024",
			want:  "Summer Vacation 2024",
		},
		{
			name:  "script tag stripped",
			input: `<script>alert("xss")</script>Vacation`,
			want:  "Vacation",
		},
		{
			name:  "html tags stripped",
			input: "<b>Bold</b> Name",
			want:  "Bold Name",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Trip Photos  ",
			want:  "Trip Photos",
		},
		{
			name:  "only markup becomes empty",
			input: "<img src=x onerror=alert(1)>",
			want:  "",
		},
		{
			name:  "empty string stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := shared.SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
