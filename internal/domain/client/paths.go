package client

import (
	"os"
	"path/filepath"
)

// historyStores maps supported (OS, browser) pairs to the vendor's
// profile-relative history database location. Firefox stores history in a
// places.sqlite with a different schema and is unsupported; Safari exists
// only on macOS.
var historyStores = map[Environment]string{
	{OSWindows, BrowserChrome}: "AppData/Local/Google/Chrome/User Data/Default/History",
	{OSMacOS, BrowserChrome}:   "Library/Application Support/Google/Chrome/Default/History",
	{OSLinux, BrowserChrome}:   ".config/google-chrome/Default/History",

	{OSWindows, BrowserEdge}: "AppData/Local/Microsoft/Edge/User Data/Default/History",
	{OSMacOS, BrowserEdge}:   "Library/Application Support/Microsoft Edge/Default/History",
	{OSLinux, BrowserEdge}:   ".config/microsoft-edge/Default/History",

	{OSWindows, BrowserBrave}: "AppData/Local/BraveSoftware/Brave-Browser/User Data/Default/History",
	{OSMacOS, BrowserBrave}:   "Library/Application Support/BraveSoftware/Brave-Browser/Default/History",
	{OSLinux, BrowserBrave}:   ".config/BraveSoftware/Brave-Browser/Default/History",

	{OSMacOS, BrowserSafari}: "Library/Safari/History.db",
}

// ResolvePath returns the expected history store location for an environment.
// It is a pure table lookup: no existence check is performed here, the
// extractor handles missing files. The second return is false for
// unsupported combinations.
func ResolvePath(env Environment) (string, bool) {
	rel, ok := historyStores[env]
	if !ok {
		return "", false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, filepath.FromSlash(rel)), true
}
