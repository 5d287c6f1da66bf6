// Package genai is the generative-answer fallback: a Gemini REST client plus
// the rule tables (sentiment, tone, intent, greeting variants) that shape the
// prompt sent with each query.
package genai
