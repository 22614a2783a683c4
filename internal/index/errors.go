package index

// EmptyCorpusError indicates Build was called with zero non-empty documents.
// There is no vocabulary to project into, so the index cannot be built.
type EmptyCorpusError struct{}

func (e *EmptyCorpusError) Error() string {
	return "cannot build index: corpus contains no non-empty documents"
}
