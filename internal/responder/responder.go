// internal/responder/responder.go
// Package responder produces the placeholder chat replies. There is no model
// behind it: a keyword rule table picks a reply family, and an FNV hash of
// the prompt picks a variant deterministically, so the same question always
// gets the same answer.
package responder

import (
	"hash/fnv"
	"strings"
	"unicode"
)

// rule maps trigger keywords to a family of reply variants.
type rule struct {
	keywords []string
	replies  []string
}

var rules = []rule{
	{
		keywords: []string{"hello", "hi", "hey", "привет"},
		replies: []string{
			"Hello! I'm Tux, your local assistant. What can I help you with?",
			"Hi there! Ask me anything — I'm running entirely on your machine.",
		},
	},
	{
		keywords: []string{"who are you", "what are you", "your name"},
		replies: []string{
			"I'm Tux AI, a local assistant. No clouds were harmed in answering this.",
			"Tux AI — a self-hosted assistant living in your terminal.",
		},
	},
	{
		keywords: []string{"model", "neural", "network", "weights"},
		replies: []string{
			"My model runs locally in either full or lite mode. You can switch modes from the model list.",
			"Everything here is local: the model directory lives under data/models.",
		},
	},
	{
		keywords: []string{"install", "setup", "environment", "venv"},
		replies: []string{
			"If something looks broken, `tuxlaunch install` rebuilds the runtime and its dependencies.",
			"The launcher keeps an isolated runtime next to the project; `tuxlaunch doctor` checks it.",
		},
	},
	{
		keywords: []string{"help", "commands", "usage"},
		replies: []string{
			"Try asking about the model, the environment, or just chat. Ctrl+C quits.",
			"I answer questions and take messages. `tuxlaunch doctor` diagnoses the setup if I misbehave.",
		},
	},
	{
		keywords: []string{"bye", "goodbye", "exit", "quit"},
		replies: []string{
			"Goodbye! Your session stays on this machine.",
			"See you next time.",
		},
	},
}

var fallbacks = []string{
	"Interesting question. My local knowledge is limited, but I'd start by breaking the problem into smaller steps.",
	"I don't have a confident answer for that yet. Could you rephrase or narrow it down?",
	"Let me think about that... my best guess is that the answer depends on context I don't have locally.",
}

// Reply picks the canned reply for a prompt. Matching is case-insensitive
// over the rule table, first rule wins; single-word keywords match whole
// words only (so "hi" does not fire inside "this") while phrase keywords use
// substring matching. A prompt matching nothing gets a fallback. The variant
// choice hashes the prompt, so Reply is a pure function.
func Reply(prompt string) string {
	lowered := strings.ToLower(strings.TrimSpace(prompt))
	words := promptWords(lowered)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matches(lowered, words, kw) {
				return pick(r.replies, lowered)
			}
		}
	}
	return pick(fallbacks, lowered)
}

// promptWords splits a lowered prompt into its letter/digit runs.
func promptWords(lowered string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return words
}

func matches(lowered string, words map[string]bool, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(lowered, keyword)
	}
	return words[keyword]
}

// pick selects a deterministic variant for the prompt.
func pick(variants []string, prompt string) string {
	if len(variants) == 1 {
		return variants[0]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return variants[h.Sum32()%uint32(len(variants))]
}
