package neat

import "errors"

var (
	// ErrInputSizeMismatch is returned by Evaluate when the input vector length
	// differs from the network's input count.
	ErrInputSizeMismatch = errors.New("input size mismatch")

	// ErrGeneNotExistent is returned by structural mutations referencing a gene
	// index that is out of range.
	ErrGeneNotExistent = errors.New("gene does not exist")

	// ErrIOSizeMismatch is returned by Crossover when the parents have different
	// input or output counts.
	ErrIOSizeMismatch = errors.New("input/output size mismatch")

	// ErrUnknownActivation is returned when a network names an activation
	// function that is not registered.
	ErrUnknownActivation = errors.New("unknown activation function")

	// ErrInvalidGenome is returned by Import when a genome description breaks
	// the node id layout or holds two genes for one link.
	ErrInvalidGenome = errors.New("invalid genome")
)
