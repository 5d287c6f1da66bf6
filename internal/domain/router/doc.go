// Package router decides, per query, whether the user is asking about their
// browsing history or the world at large, and dispatches accordingly. History
// queries go through the privacy gate before any extraction; everything else
// is delegated to the quick-lookup and generative-answer collaborators.
package router
