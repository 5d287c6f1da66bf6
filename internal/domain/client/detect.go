package client

import (
	"runtime"
	"strings"
)

// OS identifies the host operating system family
type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSUnknown OS = "unknown"
)

// Browser identifies the client browser family
type Browser string

const (
	BrowserChrome  Browser = "chrome"
	BrowserFirefox Browser = "firefox"
	BrowserSafari  Browser = "safari"
	BrowserEdge    Browser = "edge"
	BrowserBrave   Browser = "brave"
	BrowserUnknown Browser = "unknown"
)

// Environment describes the (OS, browser) pair a request originates from.
// Derived once per request and never mutated.
type Environment struct {
	OS      OS
	Browser Browser
}

// Detect classifies a raw User-Agent string into an Environment.
//
// Matching is ordered substring search: Chrome wins over Safari because
// Chromium User-Agents also advertise "Safari". OS comes from runtime.GOOS,
// the server's platform, not from the User-Agent.
func Detect(userAgent string) Environment {
	return Environment{
		OS:      hostOS(),
		Browser: detectBrowser(userAgent),
	}
}

func detectBrowser(userAgent string) Browser {
	switch {
	case strings.Contains(userAgent, "Chrome"):
		return BrowserChrome
	case strings.Contains(userAgent, "Firefox"):
		return BrowserFirefox
	case strings.Contains(userAgent, "Safari"):
		return BrowserSafari
	case strings.Contains(userAgent, "Edge"):
		return BrowserEdge
	case strings.Contains(userAgent, "Brave"):
		return BrowserBrave
	default:
		return BrowserUnknown
	}
}

func hostOS() OS {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	case "linux":
		return OSLinux
	default:
		return OSUnknown
	}
}
