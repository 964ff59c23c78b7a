package maplabel

import "errors"

var (
	// ErrInvalidBoundingBox is returned when minx >= maxx, miny >= maxy, or a coordinate is not finite.
	ErrInvalidBoundingBox = errors.New("maplabel: invalid bounding box")

	// ErrMissingLabelMetrics is returned for a point with text but without a positive label width and height.
	ErrMissingLabelMetrics = errors.New("maplabel: label text without width and height")

	// ErrInvalidPoint is returned for non-finite coordinates or a negative radius or offset.
	ErrInvalidPoint = errors.New("maplabel: invalid point")

	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("maplabel: invalid options")

	// ErrInvalidGeneticConfig is returned when a GeneticConfig fails validation.
	ErrInvalidGeneticConfig = errors.New("maplabel: invalid genetic config")

	// ErrUnknownAlgorithm is returned for an Algorithm outside the known set.
	ErrUnknownAlgorithm = errors.New("maplabel: unknown algorithm")

	// ErrNotCommitted is returned by LocalSearch when no labeler has committed a configuration yet.
	ErrNotCommitted = errors.New("maplabel: no committed configuration to refine")
)
