// ABOUTME: MCP prompts for common note and todo workflows.
// ABOUTME: Prompts steer agents to write todos under a '## TODO' heading.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "plan-todos",
		Description: "Turn a goal into a note with a prioritized TODO section",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "goal",
				Description: "What needs to get done",
				Required:    true,
			},
		},
	}, s.getPlanTodosPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-meeting-notes",
		Description: "Create meeting notes whose action items become todos",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "meeting_title",
				Description: "Title of the meeting",
				Required:    true,
			},
		},
	}, s.getMeetingNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-todos",
		Description: "Review open todos and suggest what to close, reprioritize or split",
	}, s.getReviewTodosPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getPlanTodosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal, ok := req.Params.Arguments["goal"]
	if !ok || goal == "" {
		return nil, fmt.Errorf("goal argument is required")
	}

	template := fmt.Sprintf(`Plan the work for: %s

Write a short note with this shape:

# [Goal]

[One paragraph of context]

## TODO
- [H] [Most urgent step]
- [Normal step]
- [L] [Nice to have]

Rules for the TODO section:
- One list item per concrete step, written as an action
- Mark priority with a leading [H], [M] or [L] token (or !!!, !!, !)
- Nested items are fine; every list item under the heading is tracked

Use the add_note tool to create the note, then list_todos with its note id to confirm the todos were picked up.`, goal)

	return userPrompt(template), nil
}

func (s *Server) getMeetingNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	meetingTitle, ok := req.Params.Arguments["meeting_title"]
	if !ok || meetingTitle == "" {
		meetingTitle = "Meeting"
	}

	template := fmt.Sprintf(`Create meeting notes for: %s

Please structure the notes with the following sections:

## Attendees
- [List attendees]

## Discussion Notes
[Key points discussed]

## Decisions Made
- [Decision 1]

## TODO
- [Action 1] @owner
- [Action 2] @owner

Only items under the TODO heading become tracked todos.
Use the add_note tool to create this note with appropriate tags like "meeting", "work".`, meetingTitle)

	return userPrompt(template), nil
}

func (s *Server) getReviewTodosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `Help me review my open todos:

1. Use the list_todos tool with completed=false
2. Group them by note and by tag
3. Point out todos that look done, stale or duplicated
4. Suggest priority changes with edit_todo, keeping the text intact
5. Use complete_todo for anything I confirm is finished

Please give specific recommendations with todo IDs.`

	return userPrompt(template), nil
}
