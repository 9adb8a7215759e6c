package entity

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// UploadsPathPrefix is the public path under which uploaded files are served.
const UploadsPathPrefix = "/uploads/"

// lookupIP is swapped in tests to avoid real DNS lookups.
var lookupIP = net.LookupIP

// ValidateURL validates a URL the server itself will fetch (news feeds).
// Only http/https with a host is accepted and hosts resolving to private
// networks are rejected.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is too long (max %d characters)", field, maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: field + " is invalid"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: field + " must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: field + " must have a valid host"}
	}

	ips, err := lookupIP(parsedURL.Hostname())
	if err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{
					Field:   field,
					Message: field + " cannot point to private network",
				}
			}
		}
	}

	return nil
}

// ValidateMediaURL validates a URL that is only rendered by browsers
// (images, audio, documents). Empty values are allowed, as are paths
// produced by the upload endpoint.
func ValidateMediaURL(field, rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is too long (max %d characters)", field, maxURLLength),
		}
	}
	if strings.HasPrefix(rawURL, UploadsPathPrefix) {
		if strings.Contains(rawURL, "..") {
			return &ValidationError{Field: field, Message: field + " is invalid"}
		}
		return nil
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: field + " must be an absolute URL or an uploaded file path"}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: field + " must use http or https scheme"}
	}
	return nil
}

// isPrivateIP reports whether ip is loopback, link-local or in an RFC 1918 range.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate() {
		return true
	}

	// 169.254.169.254 (cloud metadata) is link-local but some resolvers
	// return it as a mapped address.
	_, metadata, _ := net.ParseCIDR("169.254.0.0/16")
	return metadata.Contains(ip)
}
