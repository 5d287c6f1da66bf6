package genai

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/clio-assist/clio/internal/domain/session"
)

// Sentiment rule tables. Deliberately simple ordered keyword lists, matching
// the sophistication this feature actually needs.
var (
	sadWords   = []string{"sad", "depressed", "tired", "stressed", "lonely"}
	happyWords = []string{"happy", "excited", "great", "fun", "love"}
	angryWords = []string{"angry", "frustrated", "annoyed", "upset"}
)

var tones = map[string]string{
	"sad":     "empathetic and kind",
	"happy":   "excited and cheerful",
	"angry":   "calm and understanding",
	"neutral": "friendly and informative",
}

var greetings = []string{
	"Hey there!",
	"Hi! What's on your mind today?",
	"Hello! Ready to explore something new?",
	"Yo! Got a question for me?",
	"Hey! Curious about something?",
	"Hi there! What can I help you with?",
	"Welcome! What's up?",
}

var sideNotes = []string{
	"By the way, you asked a great question!",
	"Fun fact: this comes up a lot in interesting discussions!",
	"You're diving into a pretty cool topic.",
	"People don't ask this enough, well done.",
	"This is one of those questions I love getting!",
	"I genuinely appreciate your curiosity!",
}

var followUps = map[string][]string{
	"explore": {
		"Would you like to explore this further?",
		"Want me to break it down more?",
		"Should I expand on that?",
		"Would a detailed explanation help here?",
		"Shall I walk you through this step-by-step?",
	},
	"examples": {
		"Need an example to make it clearer?",
		"Shall I walk you through a sample scenario?",
		"Would a real-world analogy help here?",
		"Want to hear how this works in real life?",
	},
	"connections": {
		"Want to know how this connects to something bigger?",
		"Would you like the advanced version of this?",
		"Want to geek out on this a bit more?",
	},
	"compare": {
		"Would it help if I listed pros and cons?",
		"Need help choosing between similar options?",
		"Should I compare a few approaches?",
		"Shall I summarize the key takeaways?",
	},
	"friendly": {
		"Want to keep chatting about this?",
		"Would you like a fun fact connected to this?",
		"This is exciting right? Want to know more?",
	},
}

// triggerKeywords mark queries that want an in-depth answer
var triggerKeywords = []string{
	"explain", "how", "why", "step", "details", "example", "in-depth", "deep",
	"more info", "what is", "can you elaborate", "could you explain",
	"elaborate", "tell me more", "go deeper", "walk me through",
	"full explanation", "detailed", "clarify", "clarification", "expand on",
	"break it down", "overview", "introduction to", "help me understand",
	"simplify", "demystify", "teach me", "easy explanation", "basic",
	"fundamentals of", "i don't understand", "i'm confused", "i'm curious",
	"context", "what does it mean", "meaning of", "beginner", "from scratch",
	"what do you mean", "deeper", "technical", "can you describe",
	"what happens when", "how does it work",
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// detectSentiment classifies query mood from keyword tables.
func detectSentiment(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, sadWords):
		return "sad"
	case containsAny(lowered, happyWords):
		return "happy"
	case containsAny(lowered, angryWords):
		return "angry"
	default:
		return "neutral"
	}
}

// toneFor maps a sentiment to the tone instruction given to the model.
func toneFor(sentiment string) string {
	if tone, ok := tones[sentiment]; ok {
		return tone
	}
	return "friendly"
}

// detectIntent picks the follow-up table for a query.
func detectIntent(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, []string{"compare", "vs", "difference between", "pros and cons"}):
		return "compare"
	case containsAny(lowered, []string{"example", "analogy", "illustrate"}):
		return "examples"
	case containsAny(lowered, []string{"connect", "relation", "linked", "association"}):
		return "connections"
	case containsAny(lowered, triggerKeywords):
		return "explore"
	default:
		return "friendly"
	}
}

// needsDeepAnswer reports whether the query asks for a structured, in-depth
// response rather than the greeting-style summary.
func needsDeepAnswer(text string) bool {
	return containsAny(strings.ToLower(text), triggerKeywords)
}

func pick(variants []string) string {
	return variants[rand.IntN(len(variants))]
}

// buildPrompt assembles the model prompt: persona, conversation context,
// tone, and either the friendly summary template or the in-depth follow-up
// template.
func buildPrompt(query string, memory []session.Exchange) string {
	var context strings.Builder
	for _, m := range memory {
		fmt.Fprintf(&context, "User: %s\nAssistant: %s\n", m.Query, m.Response)
	}

	tone := toneFor(detectSentiment(query))

	var style string
	if needsDeepAnswer(query) {
		style = "This is a follow-up question. Provide a more in-depth, structured explanation:\n" +
			"- Use examples, analogies, or comparisons.\n" +
			"- Build on prior information without repeating it.\n" +
			"- Keep the tone friendly, expert, and easy to understand."
	} else {
		followUp := pick(followUps[detectIntent(query)])
		style = fmt.Sprintf(
			"Start with a friendly greeting like: %q.\n"+
				"Give a brief, clear summary of the topic (2-3 sentences). Keep it informative, but easy to digest.\n"+
				"Wrap up with a follow-up suggestion like: %q if it fits naturally into the flow.\n"+
				"Add a light side comment if appropriate: %q.",
			pick(greetings), followUp, pick(sideNotes),
		)
	}

	return fmt.Sprintf(
		"You are a friendly and knowledgeable assistant who acts like a smart, human-powered search engine. "+
			"Provide trustworthy, accurate, and digestible information, sound approachable and slightly warm, "+
			"and use Markdown formatting to improve clarity.\n\n"+
			"Conversation context:\n%s\n"+
			"Current user question:\n%s\n\n"+
			"Tone to use: %s\n\n%s",
		context.String(), query, tone, style,
	)
}
