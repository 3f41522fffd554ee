// Package useragent classifies raw user-agent strings into coarse
// device, browser, and OS buckets for click analytics.
package useragent

import "strings"

// Unknown is returned for any field that cannot be classified.
const Unknown = "unknown"

// Classification is the result of parsing a user-agent string.
type Classification struct {
	Device  string `json:"device"`
	Browser string `json:"browser"`
	OS      string `json:"os"`
}

var mobilePatterns = []string{
	"mobile", "android", "iphone", "ipod",
	"blackberry", "iemobile", "opera mini",
}

var tabletPatterns = []string{"tablet", "ipad", "playbook", "silk"}

// Classify parses a raw user-agent string with case-insensitive substring
// matching. It is pure and never fails; unmatched fields come back as
// "unknown". An empty or literal "unknown" input short-circuits without
// any pattern matching.
func Classify(userAgent string) Classification {
	if userAgent == "" || userAgent == Unknown {
		return Classification{Device: Unknown, Browser: Unknown, OS: Unknown}
	}

	ua := strings.ToLower(userAgent)

	return Classification{
		Device:  classifyDevice(ua),
		Browser: classifyBrowser(ua),
		OS:      classifyOS(ua),
	}
}

// classifyDevice checks mobile patterns before tablet patterns; a UA
// matching neither set is desktop.
func classifyDevice(ua string) string {
	for _, p := range mobilePatterns {
		if strings.Contains(ua, p) {
			return "mobile"
		}
	}

	for _, p := range tabletPatterns {
		if strings.Contains(ua, p) {
			return "tablet"
		}
	}

	return "desktop"
}

func classifyBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		return "Safari"
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "opera"), strings.Contains(ua, "opr"):
		return "Opera"
	default:
		return Unknown
	}
}

func classifyOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macos"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "ios"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "iOS"
	default:
		return Unknown
	}
}
