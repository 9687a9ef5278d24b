package types

import "github.com/m-mizutani/goerr/v2"

// Error tags identify which stage of the model pipeline failed. The
// downloader and converter report failures through these so callers can
// distinguish "no source model" from "framework rejected the model" without
// parsing message strings.
var (
	// TagModelNotFound: no SavedModel directory could be located
	TagModelNotFound = goerr.NewTag("model_not_found")

	// TagSignatureMissing: the SavedModel has no serving_default signature
	TagSignatureMissing = goerr.NewTag("signature_missing")

	// TagTraceFailed: tracing a concrete function for the input shape failed
	TagTraceFailed = goerr.NewTag("trace_failed")

	// TagConvertFailed: the format converter itself failed
	TagConvertFailed = goerr.NewTag("convert_failed")

	// TagFetchFailed: a model download failed or was rejected
	TagFetchFailed = goerr.NewTag("fetch_failed")

	// TagInvalidModel: an output file failed the TFLite sanity check
	TagInvalidModel = goerr.NewTag("invalid_model")
)
