package s3

import "testing"

func TestExtractKeyFromS3Url(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "virtual hosted url",
			url:      "https://bucket.s3.ap-southeast-1.amazonaws.com/sessions/01HZ/events.json",
			expected: "sessions/01HZ/events.json",
		},
		{
			name:     "bare key",
			url:      "sessions/01HZ/events.json",
			expected: "sessions/01HZ/events.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractKeyFromS3Url(tt.url); got != tt.expected {
				t.Errorf("extractKeyFromS3Url() = %q, want %q", got, tt.expected)
			}
		})
	}
}
