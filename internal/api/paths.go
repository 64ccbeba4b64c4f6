// Package api provides the Gemini API client implementation.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandidates   = "candidates"
	PathBlockReason  = "promptFeedback.blockReason"
	PathModelVersion = "modelVersion"

	// Candidate paths (relative to candidate object)
	PathCandParts        = "content.parts"
	PathCandFinishReason = "finishReason"
	PathCandIndex        = "index"

	// Part paths (relative to part object)
	PathPartText    = "text"
	PathPartThought = "thought"

	// Usage paths
	PathUsagePrompt     = "usageMetadata.promptTokenCount"
	PathUsageCandidates = "usageMetadata.candidatesTokenCount"
	PathUsageTotal      = "usageMetadata.totalTokenCount"
)
