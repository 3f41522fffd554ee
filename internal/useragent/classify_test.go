package useragent_test

import (
	"testing"

	"github.com/linkmetry/linkmetry/internal/useragent"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		device  string
		browser string
		os      string
	}{
		{
			name:    "iphone safari",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0) AppleWebKit/605.1.15 Safari/604.1",
			device:  "mobile",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "windows chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			device:  "desktop",
			browser: "Chrome",
			os:      "Windows",
		},
		{
			name:    "windows edge is not chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			device:  "desktop",
			browser: "Edge",
			os:      "Windows",
		},
		{
			name:    "android firefox",
			ua:      "Mozilla/5.0 (Android 14; Mobile; rv:121.0) Gecko/121.0 Firefox/121.0",
			device:  "mobile",
			browser: "Firefox",
			os:      "Android",
		},
		{
			name:    "ipad is tablet",
			ua:      "Mozilla/5.0 (iPad; CPU OS 15_0 like Mac OS X) AppleWebKit/605.1.15 Safari/604.1",
			device:  "tablet",
			browser: "Safari",
			os:      "macOS",
		},
		{
			name:    "mac opera",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 OPR/106.0.0.0",
			device:  "desktop",
			browser: "Opera",
			os:      "macOS",
		},
		{
			name:    "linux desktop chrome",
			ua:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			device:  "desktop",
			browser: "Chrome",
			os:      "Linux",
		},
		{
			name:    "unrecognized agent",
			ua:      "curl/8.4.0",
			device:  "desktop",
			browser: "unknown",
			os:      "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := useragent.Classify(tt.ua)

			assert.Equal(t, tt.device, got.Device)
			assert.Equal(t, tt.browser, got.Browser)
			assert.Equal(t, tt.os, got.OS)
		})
	}
}

func TestClassify_ShortCircuit(t *testing.T) {
	all := useragent.Classification{
		Device:  useragent.Unknown,
		Browser: useragent.Unknown,
		OS:      useragent.Unknown,
	}

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, all, useragent.Classify(""))
	})

	t.Run("literal unknown", func(t *testing.T) {
		assert.Equal(t, all, useragent.Classify("unknown"))
	})
}

func TestClassify_MobileTakesPriorityOverTablet(t *testing.T) {
	// "tablet" and "android" both match; mobile patterns win.
	got := useragent.Classify("Mozilla/5.0 (Linux; Android 13; SM-X710 Tablet) AppleWebKit/537.36")

	assert.Equal(t, "mobile", got.Device)
}
