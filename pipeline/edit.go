package pipeline

import (
	"context"
	"fmt"

	"github.com/rgtlai/ai-newsletter/session"
	"github.com/rgtlai/ai-newsletter/tweetparse"
)

// Edit applies a free-form instruction to arbitrary text within the
// session's conversation. Returns the edited text plus the trailing
// history for client-side caching.
func (p *Pipeline) Edit(ctx context.Context, text, instruction, sessionID string, prior []session.Turn) (string, []session.Turn, error) {
	if text == "" || instruction == "" {
		return "", nil, fmt.Errorf("%w: text and instruction are required", ErrValidation)
	}

	mem := p.store.GetOrCreate(sessionID)
	mem.Merge(prior, mergeWindow)

	user := fmt.Sprintf("Instruction: %s\n\nText to edit:\n%s", instruction, text)

	content, err := p.complete.Complete(ctx, withHistory(editSystemPrompt, mem.Tail(editHistory), user), 0.4)
	if err != nil {
		return "", nil, fmt.Errorf("edit: %w", err)
	}

	mem.Append(user, content)
	return content, mem.Tail(visibleTail), nil
}

// EditTweetInput carries one tweet-edit request.
type EditTweetInput struct {
	SessionID       string
	TweetID         string
	CurrentTweet    string
	OriginalSummary string
	UserMessage     string
	History         []session.Turn
}

// EditTweetResult is the outcome of one tweet-edit exchange.
type EditTweetResult struct {
	NewTweet string
	Reply    string
	History  []session.Turn
}

// EditTweet applies a conversational instruction to one tweet. Each
// (session, tweet) pair gets its own sub-session so edits to different
// tweets under one session never share a conversation thread. When the
// model breaks the structured reply contract the parser degrades per
// tweetparse; the tweet is left unchanged in the worst case.
func (p *Pipeline) EditTweet(ctx context.Context, in EditTweetInput) (*EditTweetResult, error) {
	if in.TweetID == "" || in.UserMessage == "" {
		return nil, fmt.Errorf("%w: tweet_id and user_message are required", ErrValidation)
	}

	mem := p.store.GetOrCreate(in.SessionID + "_tweet_" + in.TweetID)
	mem.Merge(in.History, len(in.History))

	user := fmt.Sprintf("Original Article Summary: %s\nCurrent Tweet: %s\nUser Request: %s",
		in.OriginalSummary, in.CurrentTweet, in.UserMessage)

	reply, err := p.complete.Complete(ctx, withHistory(editTweetSystemPrompt, mem.Tail(editTweetHistory), user), 0.7)
	if err != nil {
		return nil, fmt.Errorf("edit tweet: %w", err)
	}

	res := tweetparse.Parse(reply, in.CurrentTweet)

	mem.Append(in.UserMessage, reply)
	return &EditTweetResult{
		NewTweet: res.Tweet,
		Reply:    res.Message,
		History:  mem.Tail(visibleTail),
	}, nil
}
