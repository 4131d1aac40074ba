package content

import (
	"errors"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/blogforge/internal/frontmatter"
)

// Frontmatter keys excluded from the fingerprint: they change as a
// consequence of the content changing, so hashing them would make the
// fingerprint self-referential.
const (
	fingerprintKeyLastmod = "lastmod"
)

// ComputeFingerprint computes the canonical content fingerprint for a document.
//
// Canonicalization rules:
//   - excludes: fingerprint, lastmod
//   - serializes YAML with sorted keys and LF newlines
//   - trims a single trailing newline from the serialized YAML before hashing
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	fieldsForHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField || k == fingerprintKeyLastmod {
			continue
		}
		fieldsForHash[k] = v
	}

	frontmatterForHash := ""
	if len(fieldsForHash) > 0 {
		serialized, err := frontmatter.SerializeYAML(fieldsForHash)
		if err != nil {
			return "", err
		}
		frontmatterForHash = strings.TrimSuffix(string(serialized), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(frontmatterForHash, string(body)), nil
}
