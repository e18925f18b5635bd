package purpose

// NewAssertion returns the assertionMethod purpose.
func NewAssertion(opts ...Option) *ControllerProofPurpose {
	return NewControllerProofPurpose(AssertionMethod, opts...)
}
