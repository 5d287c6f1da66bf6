package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBrowser(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  Browser
	}{
		{
			name:      "chrome wins over safari token",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3",
			expected:  BrowserChrome,
		},
		{
			name:      "safari without chrome",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
			expected:  BrowserSafari,
		},
		{
			name:      "firefox",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			expected:  BrowserFirefox,
		},
		{
			name:      "empty user agent",
			userAgent: "",
			expected:  BrowserUnknown,
		},
		{
			name:      "unrecognized client",
			userAgent: "curl/8.0.1",
			expected:  BrowserUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectBrowser(tt.userAgent))
		})
	}
}

func TestDetectUsesHostOS(t *testing.T) {
	env := Detect("Mozilla/5.0 Chrome/120.0")

	// Browser comes from the UA, OS from the server platform.
	assert.Equal(t, BrowserChrome, env.Browser)
	assert.Equal(t, hostOS(), env.OS)
	assert.NotEmpty(t, env.OS)
}
