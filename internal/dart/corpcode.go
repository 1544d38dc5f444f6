package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/xmlpath.v2"
)

// corpCodeEntry is the archive member holding the full registry.
const corpCodeEntry = "CORPCODE.xml"

// ErrCompanyNotFound indicates the registry holds no entry with the exact
// requested company name.
var ErrCompanyNotFound = errors.New("dart: company not found in corp code registry")

var (
	corpListPath = xmlpath.MustCompile("/result/list")
	corpNamePath = xmlpath.MustCompile("corp_name")
	corpCodePath = xmlpath.MustCompile("corp_code")
)

// LookupCorpCode downloads the corp code registry (a ZIP containing
// CORPCODE.xml) and returns the 8-digit corp_code whose corp_name matches
// corpName exactly.
func (c *Client) LookupCorpCode(ctx context.Context, corpName string) (string, error) {
	root, err := c.fetchCorpRegistry(ctx)
	if err != nil {
		return "", err
	}

	want := strings.TrimSpace(corpName)
	iter := corpListPath.Iter(root)
	for iter.Next() {
		name, ok := corpNamePath.String(iter.Node())
		if !ok || strings.TrimSpace(name) != want {
			continue
		}
		code, ok := corpCodePath.String(iter.Node())
		if !ok {
			continue
		}
		return strings.TrimSpace(code), nil
	}
	return "", ErrCompanyNotFound
}

// Ping verifies the API key by downloading the corp code registry and
// checking that the response is a real ZIP containing CORPCODE.xml. The
// Content-Type header is deliberately not trusted: DART answers key errors
// with an XML error document under the same content type.
func (c *Client) Ping(ctx context.Context) error {
	if c.apiKey == "" {
		return ErrMissingKey
	}

	q := url.Values{}
	q.Set("crtfc_key", c.apiKey)

	body, err := c.get(ctx, "/api/corpCode.xml", q)
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return fmt.Errorf("dart: corpCode response is not a ZIP (key rejected?): %s", snippet)
	}
	for _, f := range zr.File {
		if f.Name == corpCodeEntry {
			return nil
		}
	}
	return fmt.Errorf("dart: corpCode ZIP does not contain %s", corpCodeEntry)
}

// fetchCorpRegistry downloads and parses the corp code registry XML.
func (c *Client) fetchCorpRegistry(ctx context.Context) (*xmlpath.Node, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("crtfc_key", c.apiKey)

	body, err := c.get(ctx, "/api/corpCode.xml", q)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("dart: corpCode response is not a ZIP: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != corpCodeEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("dart: failed to open %s: %w", corpCodeEntry, err)
		}
		root, err := xmlpath.Parse(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("dart: failed to parse %s: %w", corpCodeEntry, err)
		}
		if closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close archive entry")
		}
		return root, nil
	}
	return nil, fmt.Errorf("dart: corpCode ZIP does not contain %s", corpCodeEntry)
}
