package http

// Export private functions for testing
var (
	VerifySlackSignature = verifySlackSignature
	SplitCommandText     = splitCommandText
	RejectionText        = rejectionText
)
