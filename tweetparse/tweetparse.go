// Package tweetparse extracts an updated tweet from a free-form model
// reply. The model is instructed to emit a conversational prefix, the
// literal marker "UPDATED TWEET:", then the tweet text; when it ignores
// the contract the parser degrades to scanning for a tweet-shaped line,
// and finally to leaving the current tweet untouched.
package tweetparse

import (
	"strings"
	"unicode/utf8"
)

// Marker is the structured-format contract the edit prompt asks for.
const Marker = "UPDATED TWEET:"

// MaxTweetLen is the tweet character budget enforced on the write path.
const MaxTweetLen = 280

// fallbackMinLen is the shortest line the degraded scan will accept as a
// tweet candidate.
const fallbackMinLen = 20

const defaultMessage = "I've updated your tweet based on your request!"

// fallbackEmojis mark a line as tweet-like when hashtags and mentions are
// absent.
var fallbackEmojis = []string{"🔥", "🚀", "💡", "🤖", "⚡"}

// Result is the outcome of parsing one model reply.
type Result struct {
	// Message is the conversational text surfaced to the user.
	Message string
	// Tweet is the resulting tweet content, ≤ MaxTweetLen characters.
	Tweet string
	// Updated reports whether the reply produced a new tweet.
	Updated bool
}

type state int

const (
	seekingMarker state = iota
	splitting
	validatingLength
	parseDone
)

// Parse extracts (conversational message, updated tweet) from reply.
// currentTweet is returned unchanged when no candidate can be found. Pure
// function over its inputs.
func Parse(reply, currentTweet string) Result {
	res := Result{Message: strings.TrimSpace(reply), Tweet: currentTweet}

	var candidate string
	for st := seekingMarker; st != parseDone; {
		switch st {
		case seekingMarker:
			if strings.Contains(reply, Marker) {
				st = splitting
				continue
			}
			res = fallbackScan(reply, currentTweet)
			st = parseDone

		case splitting:
			before, after, _ := strings.Cut(reply, Marker)
			candidate = trimQuotes(strings.TrimSpace(after))
			if candidate == "" {
				// Marker with nothing after it; keep the current tweet.
				st = parseDone
				continue
			}
			res.Message = strings.TrimSpace(before)
			if res.Message == "" {
				res.Message = defaultMessage
			}
			st = validatingLength

		case validatingLength:
			res.Tweet = Truncate(candidate, MaxTweetLen)
			res.Updated = true
			st = parseDone
		}
	}
	return res
}

// fallbackScan looks for a line that resembles a tweet: bounded length
// and carrying a hashtag, mention, or one of a small emoji set.
func fallbackScan(reply, currentTweet string) Result {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n <= fallbackMinLen || n > MaxTweetLen {
			continue
		}
		if !looksLikeTweet(line) {
			continue
		}
		msg := strings.TrimSpace(strings.ReplaceAll(reply, line, ""))
		if msg == "" {
			msg = defaultMessage
		}
		return Result{Message: msg, Tweet: line, Updated: true}
	}
	// No candidate at all: surface the raw reply, keep the tweet.
	return Result{Message: strings.TrimSpace(reply), Tweet: currentTweet}
}

func looksLikeTweet(line string) bool {
	if strings.Contains(line, "#") || strings.Contains(line, "@") {
		return true
	}
	for _, e := range fallbackEmojis {
		if strings.Contains(line, e) {
			return true
		}
	}
	return false
}

func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// Truncate bounds s to max characters, cutting at the last whitespace
// boundary within budget so words are never split; when no boundary
// exists the cut is hard.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	var (
		b     strings.Builder
		count int
	)
	for _, word := range strings.Split(s, " ") {
		wlen := utf8.RuneCountInString(word)
		sep := 0
		if b.Len() > 0 {
			sep = 1
		}
		if count+sep+wlen > max {
			break
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		count += sep + wlen
	}
	if b.Len() == 0 {
		return string([]rune(s)[:max])
	}
	return b.String()
}
