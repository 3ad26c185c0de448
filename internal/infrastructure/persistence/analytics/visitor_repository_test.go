package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		device  string
		browser string
		os      string
	}{
		{
			name:    "chrome on windows",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			device:  "Desktop",
			browser: "Chrome",
			os:      "Windows",
		},
		{
			name:    "safari on iphone",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			device:  "Mobile",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "edge on mac",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0",
			device:  "Desktop",
			browser: "Edge",
			os:      "macOS",
		},
		{
			name:    "firefox on linux",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			device:  "Desktop",
			browser: "Firefox",
			os:      "Linux",
		},
		{
			name:    "chrome on android tablet",
			ua:      "Mozilla/5.0 (Linux; Android 13; Tablet) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			device:  "Tablet",
			browser: "Chrome",
			os:      "Android",
		},
		{
			name:    "empty user agent",
			ua:      "",
			device:  "Unknown",
			browser: "Unknown",
			os:      "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, browser, os := parseUserAgent(tt.ua)
			assert.Equal(t, tt.device, device)
			assert.Equal(t, tt.browser, browser)
			assert.Equal(t, tt.os, os)
		})
	}
}
