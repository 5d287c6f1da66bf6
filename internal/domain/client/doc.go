// Package client classifies the requesting browser and locates its on-disk
// history store.
//
// Browser family is parsed from the client's User-Agent header. OS family is
// read from the server's own runtime platform, not from the User-Agent; the
// two can disagree when the server does not run on the user's machine. The
// HISTORY_STORE_PATH configuration override exists for those deployments.
package client
