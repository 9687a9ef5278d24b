// Package tflite drives the ML framework's SavedModel-to-TFLite converter.
//
// The converter is not linkable from Go, so this package executes it the way
// the framework ships it: through its Python API, using small embedded driver
// scripts that speak a one-line JSON protocol on stdin/stdout.
package tflite

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/faceforge/faceforge/pkg/domain/interfaces"
	"github.com/faceforge/faceforge/pkg/domain/model"
	"github.com/faceforge/faceforge/pkg/domain/types"
)

//go:embed scripts/convert.py
var convertScript []byte

//go:embed scripts/synthesize.py
var synthesizeScript []byte

// config holds internal converter configuration
type config struct {
	python  string
	timeout time.Duration
}

// Option is a functional option for converter configuration
type Option func(*config)

// WithPython sets the Python interpreter used to run the framework
func WithPython(python string) Option {
	return func(c *config) {
		c.python = python
	}
}

// WithTimeout sets the per-conversion timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

type converter struct {
	python  string
	timeout time.Duration
}

// New creates a new framework-backed Converter
func New(opts ...Option) interfaces.Converter {
	cfg := &config{
		python:  "python3",
		timeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &converter{
		python:  cfg.python,
		timeout: cfg.timeout,
	}
}

// driverRequest is the JSON request sent to a driver script on stdin.
type driverRequest struct {
	ModelDir     string               `json:"model_dir,omitempty"`
	Signature    string               `json:"signature,omitempty"`
	Shape        *model.InputShape    `json:"shape,omitempty"`
	Options      model.ConvertOptions `json:"options"`
	InputSize    int                  `json:"input_size,omitempty"`
	EmbeddingDim int                  `json:"embedding_dim,omitempty"`
	OutputPath   string               `json:"output_path"`
}

// driverResult is the one-line JSON response printed by a driver script.
type driverResult struct {
	OK    bool   `json:"ok"`
	Stage string `json:"stage"`
	Error string `json:"error"`
	Size  int64  `json:"size"`
}

// stageTags maps a driver failure stage to its error tag. goerr's tag type
// is unexported, so a generic constructor is used to infer it.
func newStageTags[T any](load, signature, trace, convert T) map[string]T {
	return map[string]T{
		"load":      load,
		"signature": signature,
		"trace":     trace,
		"convert":   convert,
	}
}

var stageTags = newStageTags(
	types.TagConvertFailed,
	types.TagSignatureMissing,
	types.TagTraceFailed,
	types.TagConvertFailed,
)

// Convert runs the SavedModel through the framework converter and returns
// the converted buffer.
func (c *converter) Convert(ctx context.Context, req model.ConvertRequest) ([]byte, error) {
	shape := req.Shape
	return c.runDriver(ctx, convertScript, &driverRequest{
		ModelDir:  req.ModelDir,
		Signature: req.Signature,
		Shape:     &shape,
		Options:   req.Options,
	})
}

// Synthesize builds and converts a placeholder embedding network.
func (c *converter) Synthesize(ctx context.Context, spec model.SyntheticSpec) ([]byte, error) {
	return c.runDriver(ctx, synthesizeScript, &driverRequest{
		InputSize:    spec.InputSize,
		EmbeddingDim: spec.EmbeddingDim,
	})
}

// runDriver executes a driver script and returns the bytes it wrote to the
// scratch output path.
func (c *converter) runDriver(ctx context.Context, script []byte, req *driverRequest) ([]byte, error) {
	logger := ctxlog.From(ctx)

	workDir, err := os.MkdirTemp("", "faceforge-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scratch directory")
	}
	defer func() {
		_ = os.RemoveAll(workDir)
	}()

	scriptPath := filepath.Join(workDir, "driver.py")
	if err := os.WriteFile(scriptPath, script, 0600); err != nil {
		return nil, goerr.Wrap(err, "failed to write driver script")
	}

	req.OutputPath = filepath.Join(workDir, "model.tflite")
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode driver request")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.python, scriptPath)
	cmd.Stdin = bytes.NewReader(reqJSON)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running conversion driver", "python", c.python)

	if err := cmd.Run(); err != nil {
		return nil, goerr.Wrap(err, "conversion driver did not run",
			goerr.T(types.TagConvertFailed),
			goerr.V("python", c.python),
			goerr.V("stderr", stderr.String()),
		)
	}

	result, err := parseResult(stdout.Bytes())
	if err != nil {
		return nil, goerr.Wrap(err, "unreadable driver output",
			goerr.T(types.TagConvertFailed),
			goerr.V("stdout", stdout.String()),
		)
	}

	if !result.OK {
		tag, ok := stageTags[result.Stage]
		if !ok {
			tag = types.TagConvertFailed
		}
		return nil, goerr.New("conversion failed",
			goerr.T(tag),
			goerr.V("stage", result.Stage),
			goerr.V("cause", result.Error),
		)
	}

	buf, err := os.ReadFile(req.OutputPath)
	if err != nil {
		return nil, goerr.Wrap(err, "driver reported success but wrote no model",
			goerr.T(types.TagConvertFailed),
		)
	}

	return buf, nil
}

// parseResult decodes the last non-empty stdout line. The framework is
// chatty on stdout, so only the final line is treated as the result.
func parseResult(out []byte) (*driverResult, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return nil, goerr.New("driver produced no output")
	}

	var result driverResult
	if err := json.Unmarshal([]byte(last), &result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode driver result", goerr.V("line", last))
	}
	return &result, nil
}
