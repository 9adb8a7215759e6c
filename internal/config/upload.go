package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed upload_policy.yaml
var defaultUploadPolicy []byte

// formOverhead is added to the largest file size to bound multipart bodies.
const formOverhead = 1 << 20

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// UploadRule limits one upload discriminator.
type UploadRule struct {
	Folder  string   `yaml:"folder"`
	MaxSize int64    `yaml:"max_size"`
	Allowed []string `yaml:"allowed"`
}

// UploadPolicy maps the form's type/folder discriminator to its rule.
type UploadPolicy struct {
	Types map[string]UploadRule `yaml:"types"`
}

// LoadUploadPolicy reads the policy from path, or returns the embedded
// default when path is empty.
// The path parameter is expected to come from a trusted source (environment variable).
func LoadUploadPolicy(path string) (*UploadPolicy, error) {
	data := defaultUploadPolicy
	if path != "" {
		// #nosec G304 -- path comes from UPLOAD_POLICY_FILE
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read upload policy: %w", err)
		}
		data = b
	}
	return ParseUploadPolicy(data)
}

// ParseUploadPolicy decodes and validates a YAML upload policy.
func ParseUploadPolicy(data []byte) (*UploadPolicy, error) {
	var p UploadPolicy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse upload policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every rule has a safe folder, a positive size and at
// least one allowed type.
func (p *UploadPolicy) Validate() error {
	if len(p.Types) == 0 {
		return fmt.Errorf("upload policy: no types defined")
	}
	for name, rule := range p.Types {
		if !folderPattern.MatchString(rule.Folder) {
			return fmt.Errorf("upload policy: type %q has invalid folder %q", name, rule.Folder)
		}
		if rule.MaxSize <= 0 {
			return fmt.Errorf("upload policy: type %q max_size must be positive", name)
		}
		if len(rule.Allowed) == 0 {
			return fmt.Errorf("upload policy: type %q allows no MIME types", name)
		}
	}
	return nil
}

// Rule looks up a discriminator. Folder names are accepted as aliases so
// that both type=image and folder=images work.
func (p *UploadPolicy) Rule(kind string) (UploadRule, bool) {
	if rule, ok := p.Types[kind]; ok {
		return rule, true
	}
	for _, rule := range p.Types {
		if rule.Folder == kind {
			return rule, true
		}
	}
	return UploadRule{}, false
}

// MaxRequestBytes bounds an upload request body.
func (p *UploadPolicy) MaxRequestBytes() int64 {
	var largest int64
	for _, rule := range p.Types {
		largest = max(largest, rule.MaxSize)
	}
	return largest + formOverhead
}
