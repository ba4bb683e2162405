package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/observability"
)

const (
	// maxDatasetSize caps how much of a remote dataset is read.
	maxDatasetSize = 32 << 20

	// fetchTimeout bounds a single dataset download.
	fetchTimeout = 30 * time.Second
)

// httpClient is used by Fetch. Tests replace it to point at httptest servers.
var httpClient = &http.Client{Timeout: fetchTimeout}

// ReadJSON decodes a JSON array of records from r.
func ReadJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDataset, err, "decode JSON dataset")
	}
	return records, nil
}

// ReadYAML decodes a YAML sequence of records from r.
// An empty document decodes as an empty dataset.
func ReadYAML(r io.Reader) ([]Record, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.ErrCodeInvalidDataset, err, "decode YAML dataset")
	}
	return records, nil
}

// LoadFile reads a dataset from a local file. The format follows the file
// extension: .json, .yaml or .yml.
func LoadFile(path string) ([]Record, error) {
	if err := errs.ValidateSource(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeDatasetUnavailable, err, "open %s", path)
	}
	defer f.Close()
	return decode(f, path)
}

// Fetch downloads a dataset from an http(s) URL. The request is made once;
// failures are returned to the caller and never retried.
func Fetch(ctx context.Context, url string) ([]Record, error) {
	if err := errs.ValidateURL(url); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errs.Wrap(errs.ErrCodeDatasetUnavailable, err, "fetch %s", url)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.New(errs.ErrCodeDatasetUnavailable, "fetch %s: unexpected status %s", url, resp.Status)
	}

	name := url
	if isYAMLContentType(resp.Header.Get("Content-Type")) {
		name = "response.yaml"
	}
	return decode(io.LimitReader(resp.Body, maxDatasetSize), name)
}

// Load reads a dataset from a file path or an http(s) URL and validates it.
func Load(ctx context.Context, source string) ([]Record, error) {
	if err := errs.ValidateSource(source); err != nil {
		return nil, err
	}

	var (
		records []Record
		err     error
	)
	if errs.IsURL(source) {
		records, err = Fetch(ctx, source)
	} else {
		records, err = LoadFile(source)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(records); err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}
	return records, nil
}

// Validate checks that every record has a usable, unique system name.
// Duplicate names are rejected rather than merged or overwritten.
func Validate(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if err := errs.ValidateName(r.System); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if prev, ok := seen[r.System]; ok {
			return errs.New(errs.ErrCodeInvalidDataset,
				"duplicate system %q (records %d and %d)", r.System, prev, i)
		}
		seen[r.System] = i
	}
	return nil
}

func decode(r io.Reader, name string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ReadYAML(r)
	default:
		return ReadJSON(r)
	}
}

func isYAMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "yaml")
}
