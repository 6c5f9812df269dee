package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://img.pokemondb.net/sprites/home/normal/bulbasaur.png", false},
		{"http://127.0.0.1:8080/sprite.png", false},
		{"HTTPS://example.com/a.png", false},
		{"", true},
		{"ftp://example.com/a.png", true},
		{"file:///etc/passwd", true},
		{"https://", true},
		{"sprite.png", true},
		{"http://[::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		data, err := io.ReadAll(NewLimitedReader(strings.NewReader("sprite"), 6))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "sprite" {
			t.Errorf("got %q", data)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := io.ReadAll(NewLimitedReader(strings.NewReader("sprites"), 6))
		if !errors.Is(err, ErrSizeLimit) {
			t.Errorf("error = %v, want ErrSizeLimit", err)
		}
	})
}
