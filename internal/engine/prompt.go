package engine

// LLM prompt templates — data only, no logic.

// summarySystem instructs the model on transcript summarization.
const summarySystem = `You are a helpful assistant that summarizes video transcripts. Provide a clear, comprehensive summary with key points and main takeaways.`

// summaryPrompt wraps the (possibly reduced) transcript text.
// Args: transcript text.
const summaryPrompt = `Please summarize the following video transcript:

%s`

// answerSystem instructs the model on grounded question answering.
const answerSystem = `You are a helpful assistant answering questions about a video using excerpts from its transcript. Base your answer only on the excerpts and the conversation so far. If the excerpts do not contain the answer, say so.`

// answerPrompt composes retrieved excerpts, conversation history and the
// current question. Args: excerpts, history, question.
const answerPrompt = `Transcript excerpts:
%s
%sQuestion: %s`
