package core

// Transformer mutates a session list in place.
type Transformer interface {
	Transform(sessions []Session) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(sessions []Session, transformers ...Transformer) error {
	for _, tr := range transformers {
		if err := tr.Transform(sessions); err != nil {
			return err
		}
	}
	return nil
}
