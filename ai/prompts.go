package ai

import "strings"

const summarizePrompt = `You summarize personal notes.
Summarize the content the user sends concisely, keeping the key points and their structure.
Reply with the summary only, without a preamble.`

const rewritePrompt = `You are an editor.
Rewrite and format the content the user sends so it is clear, well-structured and professional.
Improve grammar, readability and organization without changing the meaning.
Reply with the rewritten content only.`

const blogPostPrompt = `You turn rough notes into blog posts.
Format the content the user sends as a blog post in Markdown.
Use # for sections, ## for subsections and ### for sub-subsections.
Convert enumerations and lists of items into bullet lists.
Keep every point from the input and do not remove content; only add structure.
Keep the author's voice and facts. Reply with the post body only.`

const extractTasksPrompt = `You extract actionable tasks from text.
Return only the task items, one per line, without numbers, bullet points or commentary.
If the text contains no actionable tasks, return nothing.`

const speechToTaskPrompt = `You convert spoken or typed requests into to-do items.
Convert the text the user sends into one clear, concise, actionable task title.
Reply with the task title only, on a single line, without quotes.`

// promptFor returns the system prompt of an operation.
func promptFor(op Operation) string {
	switch op {
	case OpSummarize:
		return summarizePrompt
	case OpRewriteAndFormat:
		return rewritePrompt
	case OpFormatAsBlogPost:
		return blogPostPrompt
	case OpExtractTasks:
		return extractTasksPrompt
	case OpSpeechToTask:
		return speechToTaskPrompt
	default:
		return ""
	}
}

// userMessage wraps speech input in quotes so the model treats it as data.
func userMessage(op Operation, text string) string {
	if op == OpSpeechToTask {
		var sb strings.Builder
		sb.WriteString(`"`)
		sb.WriteString(text)
		sb.WriteString(`"`)
		return sb.String()
	}
	return text
}
