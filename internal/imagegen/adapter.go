package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/petasbytes/imagegen-mcp/internal/telemetry"
)

// imageService is the slice of the OpenAI SDK the adapter consumes. It is
// satisfied by *openai.ImageService; tests inject fakes.
type imageService interface {
	Generate(ctx context.Context, body openai.ImageGenerateParams, opts ...option.RequestOption) (*openai.ImagesResponse, error)
}

// Result is a successful generation outcome: the unmodified upstream response
// plus the written file paths in entry order.
type Result struct {
	Raw        *openai.ImagesResponse
	SavedPaths []string
}

// Adapter performs the upstream call and normalizes the response into files
// on disk. It holds no per-request state; concurrent calls only share the
// filesystem namespace.
type Adapter struct {
	images     imageService
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter wires the adapter to an image service, an HTTP client for
// fetching URL-referenced images, and a logger. Nil httpClient and logger
// fall back to http.DefaultClient and a no-op logger.
func NewAdapter(images imageService, httpClient *http.Client, logger *zap.Logger) *Adapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		images:     images,
		httpClient: httpClient,
		logger:     logger.With(zap.String("component", "imagegen_adapter")),
	}
}

// GenerateImage performs one upstream call and writes one file per returned
// image entry. With a single entry the requested path is used verbatim;
// multiple entries get `_<index>` siblings. An empty upstream image list is
// compensated with a single placeholder file rather than reported as a
// failure. Already-written files are not cleaned up when a later entry fails.
func (a *Adapter) GenerateImage(ctx context.Context, prompt, outputPath string, params Params) (*Result, error) {
	variant := params.Variant()
	if limit := variant.PromptLimit(); limit > 0 && len(prompt) > limit {
		a.logger.Warn("prompt exceeds documented model limit",
			zap.String("model", string(variant)),
			zap.Int("length", len(prompt)),
			zap.Int("limit", limit),
		)
	}

	resp, err := a.images.Generate(ctx, params.generateParams(prompt))
	if err != nil {
		return nil, err
	}

	if raw := responseJSON(resp); raw != nil {
		telemetry.PersistPayload("images_generate", raw)
	}

	var entries []openai.Image
	if resp != nil {
		entries = resp.Data
	}
	if len(entries) == 0 {
		// Compatibility shim for upstreams that return no image entries: keep
		// the one-file-per-requested-image contract via a placeholder.
		a.logger.Warn("upstream returned no image data, substituting placeholder",
			zap.String("model", string(variant)))
		entries = []openai.Image{{}}
	}

	paths := outputPaths(outputPath, len(entries))

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	saved := make([]string, 0, len(entries))
	for i, entry := range entries {
		data, err := a.imageBytes(ctx, entry, params.outputFormat())
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(paths[i], data, 0o644); err != nil {
			return nil, fmt.Errorf("write image %s: %w", paths[i], err)
		}

		a.logger.Info("image saved",
			zap.String("model", string(variant)),
			zap.String("path", paths[i]),
			zap.Int("bytes", len(data)),
		)
		telemetry.Emit("image_saved", map[string]any{
			"model": string(variant),
			"path":  paths[i],
			"bytes": len(data),
		})
		saved = append(saved, paths[i])
	}

	return &Result{Raw: resp, SavedPaths: saved}, nil
}

// imageBytes resolves one image entry to raw bytes, in precedence order:
// inline base64 payload, fetchable URL, then placeholder.
func (a *Adapter) imageBytes(ctx context.Context, entry openai.Image, format string) ([]byte, error) {
	if entry.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(entry.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		return data, nil
	}
	if entry.URL != "" {
		return a.fetchImage(ctx, entry.URL)
	}
	return placeholderImage(format)
}

func (a *Adapter) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image fetch request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch image %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}

func responseJSON(resp *openai.ImagesResponse) []byte {
	if resp == nil {
		return nil
	}
	if raw := resp.RawJSON(); raw != "" {
		return []byte(raw)
	}
	return nil
}
