package api

// Response framing. The generate endpoint answers with an anti-XSSI
// prefix followed by newline-separated JSON envelopes. The payload we
// care about sits on a fixed line.
const responsePayloadLine = 3

// gjson paths into the outer envelope on the payload line.
const (
	// The body is a JSON-encoded string that must be parsed again.
	pathPrimaryBody   = "0.2"
	pathSecondaryBody = "4.2"

	// Upstream error code for the alternate error envelope shape.
	pathEnvelopeError = "0.5.0"
)

// gjson paths into the decoded body.
const (
	pathMetadata      = "1"
	pathCandidateList = "4"
)

// gjson paths relative to a single candidate entry.
const (
	pathCandRCID      = "0"
	pathCandText      = "1.0"
	pathCandWebImages = "4"
	pathCandGenGate   = "12"
	pathCandGenImages = "12.7.0"
	pathCandThoughts  = "37.0.0"
)

// gjson paths relative to a single web image entry.
const (
	pathWebImgURL   = "0.0.0"
	pathWebImgTitle = "2"
	pathWebImgAlt   = "0.4"
)

// gjson paths relative to a single generated image entry.
const (
	pathGenImgURL  = "0.3.3"
	pathGenImgNum  = "3.6"
	pathGenImgAlts = "3.5"
)
