package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetGameSummaryMessage describes a game and its players
	GetGameSummaryMessage(ctx context.Context, input *GetGameSummaryMessageInput) (*GetGameSummaryMessageOutput, error)

	// GetRoundMessage describes the latest round
	GetRoundMessage(ctx context.Context, input *GetRoundMessageInput) (*GetRoundMessageOutput, error)

	// GetSessionMessage describes a stored session
	GetSessionMessage(ctx context.Context, input *GetSessionMessageInput) (*GetSessionMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
