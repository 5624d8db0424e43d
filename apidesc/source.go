package apidesc

// Description sources are resolved with hashicorp/go-getter:
//   - Local paths: raylib_api.json, ./parser/output/raylib_api.json, ~/raylib_api.json
//   - HTTP(S): https://raw.githubusercontent.com/raysan5/raylib/5.0/parser/output/raylib_api.json
//   - Forced getters: git::, s3::, gcs:: with a //subpath to the file

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/rsbind/errors"
	"github.com/teranos/rsbind/internal/httpclient"
)

// FetchOptions control remote fetches
type FetchOptions struct {
	// Timeout bounds an HTTP(S) fetch; 0 means no timeout
	Timeout time.Duration

	// BlockPrivateNetworks refuses HTTP(S) sources on localhost or private addresses
	BlockPrivateNetworks bool
}

// Source is a resolved description file
type Source struct {
	// LocalPath is the file to read (either the original or a fetched copy)
	LocalPath string
	// OriginalInput is the input as configured
	OriginalInput string
	// IsRemote is true when the file was fetched into a temp directory
	IsRemote bool

	cleanup func()
}

// Cleanup removes any fetched temp files. Safe to call more than once.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Resolve resolves input to a local description file, fetching remote sources
// into a temp directory. The returned Source must be cleaned up when done.
func Resolve(ctx context.Context, input string, opts FetchOptions, logger *zap.SugaredLogger) (*Source, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.NewLoadError("empty description source")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	local := expandHome(input)
	if filepath.IsAbs(local) || !strings.Contains(input, "://") && !strings.Contains(input, "::") {
		if !filepath.IsAbs(local) {
			local = filepath.Join(pwd, local)
		}
		if _, statErr := os.Stat(local); statErr == nil {
			return &Source{LocalPath: local, OriginalInput: input, cleanup: func() {}}, nil
		}
	}

	// Use go-getter's detection to identify source type
	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapLoad(err, "detecting description source"),
			"use a local path or a go-getter URL such as https://..., git::...//file.json",
		)
	}

	logger.Debugw("go-getter detected source",
		"input", input,
		"detected", detected,
	)

	parsedURL, err := url.Parse(detected)
	if err != nil {
		return nil, errors.WrapLoad(err, "parsing detected source URL")
	}

	// A file:// result means a local path that does not exist
	if parsedURL.Scheme == "file" || parsedURL.Scheme == "" {
		return nil, errors.WithHint(
			errors.NewLoadError("api description not found: %s", input),
			"generate raylib_api.json with raylib's parser, or point input.source at it",
		)
	}

	if parsedURL.Scheme == "http" || parsedURL.Scheme == "https" {
		if err := httpclient.ValidateURL(parsedURL, opts.BlockPrivateNetworks); err != nil {
			return nil, errors.WithHint(
				errors.WrapLoad(err, "refusing description source"),
				"set input.block_private_networks = false to fetch from local hosts",
			)
		}
	}

	return fetch(ctx, input, detected, opts, logger)
}

// fetch downloads a remote description file using go-getter
func fetch(ctx context.Context, input, detected string, opts FetchOptions, logger *zap.SugaredLogger) (*Source, error) {
	tempDir, err := os.MkdirTemp("", "rsbind-api-*")
	if err != nil {
		return nil, errors.WrapLoad(err, "creating temp directory")
	}

	dst := filepath.Join(tempDir, sourceFileName(input))

	logger.Infow("Fetching api description",
		"input", input,
		"destination", dst,
	)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getters(opts),
	}

	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.WithHint(
			errors.WrapLoad(err, "fetching api description "+input),
			"check the URL and network access",
		)
	}

	return &Source{
		LocalPath:     dst,
		OriginalInput: input,
		IsRemote:      true,
		cleanup: func() {
			logger.Debugw("Cleaning up fetched description", "path", tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}

// getters returns go-getter's defaults (git, hg, s3, gcs, file) with the
// HTTP getters using our client
func getters(opts FetchOptions) map[string]getter.Getter {
	out := make(map[string]getter.Getter, len(getter.Getters))
	for k, v := range getter.Getters {
		out[k] = v
	}
	httpGetter := &getter.HttpGetter{
		Netrc: true,
		Client: httpclient.New(httpclient.Options{
			Timeout:              opts.Timeout,
			BlockPrivateNetworks: opts.BlockPrivateNetworks,
		}),
	}
	out["http"] = httpGetter
	out["https"] = httpGetter
	return out
}

// sourceFileName picks a file name for a fetched source, keeping its extension
// so the format can still be detected
func sourceFileName(input string) string {
	// Strip go-getter forcing prefix and query
	if i := strings.Index(input, "::"); i >= 0 {
		input = input[i+2:]
	}
	if i := strings.IndexAny(input, "?#"); i >= 0 {
		input = input[:i]
	}
	// git::https://host/repo.git//parser/output/raylib_api.json
	if i := strings.LastIndex(input, "//"); i >= 0 && !strings.HasSuffix(input[:i], ":") {
		input = input[i+2:]
	}
	name := path.Base(strings.TrimSuffix(input, "/"))
	if name == "" || name == "." || name == "/" || !strings.Contains(name, ".") {
		return "api_description.json"
	}
	return name
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// IsRemote reports whether input names a remote source
func IsRemote(input string) bool {
	return strings.Contains(input, "://") || strings.Contains(input, "::")
}
